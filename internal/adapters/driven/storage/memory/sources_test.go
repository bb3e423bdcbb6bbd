package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvdpcode/qa-final/internal/core/domain"
)

func TestRelationalSource_Query(t *testing.T) {
	src := NewRelationalSource()
	src.SetResult("q1", []domain.Row{{"ITEM_NUMBER": "X1"}})

	rows, err := src.Query(context.Background(), "q1")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows[0]["ITEM_NUMBER"] = "changed"
	again, err := src.Query(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, "X1", again[0]["ITEM_NUMBER"])

	empty, err := src.Query(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)

	assert.Equal(t, []string{"q1", "q1", "unknown"}, src.Queries())
}

func TestRelationalSource_Errors(t *testing.T) {
	src := NewRelationalSource()
	boom := errors.New("boom")
	src.SetError("q", boom)

	_, err := src.Query(context.Background(), "q")
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Query(ctx, "other")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRelationalSource_FormatTimestampsAndClose(t *testing.T) {
	src := NewRelationalSource()
	ts := time.Date(2022, 12, 31, 23, 59, 58, 0, time.UTC)

	rows := src.FormatTimestamps([]domain.Row{{"d": ts}})

	assert.Equal(t, "2022-12-31 23:59:58", rows[0]["d"])
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())
	assert.Equal(t, 2, src.CloseCount())
}

func TestIndexSource_FetchAllPages(t *testing.T) {
	docs := []domain.IndexDocument{{"id": 1}, {"id": 2}, {"id": 3}}
	src := NewIndexSource(docs, nil)

	got, err := src.FetchAll(context.Background(), "*:*", 2)

	require.NoError(t, err)
	assert.Equal(t, docs, got)
	assert.Equal(t, 2, src.Pages())
}

func TestIndexSource_Errors(t *testing.T) {
	src := NewIndexSource(nil, []domain.SchemaField{{Name: "id"}})

	_, err := src.FetchAll(context.Background(), "*:*", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidProfile)

	boom := errors.New("boom")
	src.SetFetchError(boom)
	_, err = src.FetchAll(context.Background(), "*:*", 10)
	assert.ErrorIs(t, err, boom)

	fields, err := src.SchemaFields(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.SchemaField{{Name: "id"}}, fields)

	src.SetSchemaError(boom)
	_, err = src.SchemaFields(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSourceFactory(t *testing.T) {
	rel := NewRelationalSource()
	idx := NewIndexSource(nil, nil)
	f := NewSourceFactory(rel, idx)
	p := domain.NewProfile("memo")

	gotRel, err := f.Relational(context.Background(), p)
	require.NoError(t, err)
	assert.Same(t, rel, gotRel)
	gotIdx, err := f.Index(p)
	require.NoError(t, err)
	assert.Same(t, idx, gotIdx)

	f.RelationalErr = errors.New("down")
	_, err = f.Relational(context.Background(), p)
	assert.Error(t, err)

	_, err = (&SourceFactory{}).Index(p)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestRunStore(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, &domain.RunReport{RunID: "a", Profile: "memo", StartedAt: base}))
	require.NoError(t, store.Save(ctx, &domain.RunReport{RunID: "b", Profile: "bv", StartedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.RunReport{RunID: "c", Profile: "memo", StartedAt: base.Add(2 * time.Hour)}))

	all, err := store.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].RunID, all[1].RunID, all[2].RunID})

	memo, err := store.List(ctx, "memo", 1)
	require.NoError(t, err)
	require.Len(t, memo, 1)
	assert.Equal(t, "c", memo[0].RunID)

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "bv", got.Profile)

	_, err = store.Get(ctx, "zzz")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}
