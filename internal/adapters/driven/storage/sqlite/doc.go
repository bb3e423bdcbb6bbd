// Package sqlite provides the SQLite-backed run history store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each run is stored as one row holding its summary columns
// and the full report as JSON.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; an up migration records its version in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.qafinal/data/history.db
package sqlite
