package mcp

import (
	"github.com/custodia-labs/filesearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search answers grounded questions and lists models.
	Search driving.SearchService

	// Stores lists file search stores.
	Stores driving.StoreService

	// Documents lists documents inside a store.
	Documents driving.DocumentService

	// Media reports ingestion operations.
	Media driving.MediaService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Stores, Documents and Media are optional; their tools report unavailability.
	return nil
}
