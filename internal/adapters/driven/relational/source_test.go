package relational

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

func setupTestDB(t *testing.T) *Source {
	t.Helper()

	db, err := sqlx.Open(DriverSQLite, ":memory:")
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive between statements.
	db.SetMaxOpenConns(1)

	db.MustExec(`CREATE TABLE items (
		item_number TEXT NOT NULL,
		description TEXT,
		rev_number  INTEGER,
		payload     BLOB
	)`)
	db.MustExec(`INSERT INTO items VALUES ('X1', 'Doc', 1, x'6869')`)
	db.MustExec(`INSERT INTO items VALUES ('X2', NULL, 2, NULL)`)

	src := New(db)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

func TestSource_Query(t *testing.T) {
	src := setupTestDB(t)

	rows, err := src.Query(context.Background(), `SELECT item_number AS ITEM_NUMBER, description, rev_number, payload FROM items ORDER BY item_number`)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "X1", rows[0]["ITEM_NUMBER"])
	assert.Equal(t, "Doc", rows[0]["description"])
	assert.EqualValues(t, 1, rows[0]["rev_number"])
	assert.Equal(t, "hi", rows[0]["payload"])
	assert.Nil(t, rows[1]["description"])
	assert.Nil(t, rows[1]["payload"])
}

func TestSource_Query_NoRows(t *testing.T) {
	src := setupTestDB(t)

	rows, err := src.Query(context.Background(), `SELECT * FROM items WHERE item_number = 'nope'`)

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSource_Query_Error(t *testing.T) {
	src := setupTestDB(t)

	_, err := src.Query(context.Background(), `SELECT * FROM missing_table`)

	assert.Error(t, err)
}

func TestSource_Query_CancelledContext(t *testing.T) {
	src := setupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Query(ctx, `SELECT * FROM items`)

	assert.Error(t, err)
}

func TestSource_FormatTimestamps(t *testing.T) {
	src := setupTestDB(t)
	ts := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)

	rows := src.FormatTimestamps([]domain.Row{{"RELEASE_DATE": ts, "ITEM_NUMBER": "X1"}})

	assert.Equal(t, "2023-05-06 07:08:09", rows[0]["RELEASE_DATE"])
	assert.Equal(t, "X1", rows[0]["ITEM_NUMBER"])
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "postgres", "dsn")

	assert.ErrorIs(t, err, domain.ErrUnsupportedDriver)
}

func TestOpen_MissingDSN(t *testing.T) {
	_, err := Open(context.Background(), DriverOracle, "")

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestOpen_SQLiteFile(t *testing.T) {
	path := t.TempDir() + "/snapshot.db"

	src, err := Open(context.Background(), DriverSQLite, path)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.db.Exec(`CREATE TABLE t (a TEXT)`)
	require.NoError(t, err)
	_, err = src.db.Exec(`INSERT INTO t VALUES ('v')`)
	require.NoError(t, err)

	rows, err := src.Query(context.Background(), `SELECT a FROM t`)
	require.NoError(t, err)
	assert.Equal(t, []domain.Row{{"a": "v"}}, rows)
}

func TestSource_CloseNil(t *testing.T) {
	assert.NoError(t, (&Source{}).Close())
}
