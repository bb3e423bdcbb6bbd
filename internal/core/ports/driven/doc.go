// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RelationalSource: Executes queries against the system-of-record database
//   - IndexSource: Fetches documents and schema from the search index
//   - SourceFactory: Opens both sources for a profile
//   - ConfigStore: Application configuration
//
// Connection pooling, retries and authentication live entirely behind
// these interfaces. The core only sees fully materialised results.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
