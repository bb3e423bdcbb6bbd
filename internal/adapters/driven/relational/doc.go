// Package relational implements driven.RelationalSource over database/sql
// using sqlx.
//
// Two drivers are registered:
//
//   - oracle: github.com/sijms/go-ora/v2, a pure Go Oracle client
//   - sqlite: modernc.org/sqlite, for local snapshots and fixtures
//
// Rows are returned as column-name maps exactly as the database reports
// them; normalisation happens in the core.
package relational
