// Package domain defines the core reconciliation entities for qafinal.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Row: A raw record as returned by the relational source
//   - Document: A normalised (or composite) relational document
//   - IndexDocument: A document as returned by the search index
//   - DocumentKey: The composite identity shared by both stores
//   - Discrepancy: A detected difference between the two stores
//   - Profile: The per-doctype run configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
