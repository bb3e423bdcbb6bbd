// Package services implements the driving port interfaces.
// Services contain the reconciliation engine and orchestrate
// calls to driven ports (adapters).
//
// The engine is built from small, independently testable pieces:
//
//   - NormalizeRow: lower-cases keys and substitutes NullMarker
//   - Joiner: flattens parent and child rows into composite documents
//   - RelationalKey / IndexKey: derive the shared DocumentKey
//   - NormalizeValue: canonicalises a scalar for comparison
//   - Reconciler: count, column-set and keyed field comparison
//   - LifecycleValidator: lifecycle and release date checks on the index
//
// Services are pure Go with no CGO or external dependencies beyond logging.
package services
