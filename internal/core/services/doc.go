// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every service composes upstream requests from resource-name templates,
// validates caller input before any network I/O, and maps 404-class upstream
// failures to domain.ErrNotFound. Services hold only read-only configuration
// and are safe for concurrent use.
package services
