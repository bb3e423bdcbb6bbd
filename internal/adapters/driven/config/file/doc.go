// Package file provides the TOML-backed configuration store.
//
// Profiles live in ~/.qafinal/config.toml by default, one table per
// document type:
//
//	[profiles.memo]
//	doctype = "MEMO"
//
//	[profiles.memo.relational]
//	dsn = "oracle://qa:secret@db:1521/ORCL"
//
// Nested tables are flattened into dot-notation keys on load
// ("profiles.memo.relational.dsn") and nested again on save.
package file
