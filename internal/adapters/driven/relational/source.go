package relational

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // Oracle driver
	_ "modernc.org/sqlite"         // SQLite driver

	"github.com/nvdpcode/qa-final/internal/core/domain"
	"github.com/nvdpcode/qa-final/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.RelationalSource = (*Source)(nil)

// Registered driver names.
const (
	DriverOracle = "oracle"
	DriverSQLite = "sqlite"
)

// pingTimeout bounds the connectivity check in Open.
const pingTimeout = 30 * time.Second

// Source runs queries against a relational database.
type Source struct {
	db *sqlx.DB
}

// New wraps an existing connection pool.
func New(db *sqlx.DB) *Source {
	return &Source{db: db}
}

// Open connects to the database identified by driver and dsn and verifies
// the connection.
func Open(ctx context.Context, driver, dsn string) (*Source, error) {
	switch driver {
	case DriverOracle, DriverSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedDriver, driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("%s dsn: %w", driver, domain.ErrNotConfigured)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", driver, err)
	}

	return New(db), nil
}

// Query executes query and returns every row as a column-name map.
// Byte slices are converted to strings.
func (s *Source) Query(ctx context.Context, query string) ([]domain.Row, error) {
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	var out []domain.Row
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		out = append(out, domain.Row(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

// FormatTimestamps renders date/time columns as "YYYY-MM-DD HH:MM:SS".
func (s *Source) FormatTimestamps(rows []domain.Row) []domain.Row {
	return domain.FormatTimestamps(rows)
}

// Close releases the connection pool.
func (s *Source) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
