// Package domain defines the core entities of the file search gateway.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Store: An upstream collection of documents searchable as a unit
//   - Document: One ingested file inside a store
//   - Operation: A snapshot of a long-running ingestion job
//   - SearchResult: A normalised grounded answer
//   - UpstreamError: A classified failure talking to the upstream API
//
// Every entity is an immutable value returned from a call. The upstream
// service is the system of record; nothing here is persisted locally.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
