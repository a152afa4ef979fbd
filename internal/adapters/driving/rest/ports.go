package rest

import (
	"github.com/custodia-labs/filesearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Stores manages file search stores.
	Stores driving.StoreService

	// Documents manages documents inside stores.
	Documents driving.DocumentService

	// Media uploads and imports files.
	Media driving.MediaService

	// Search answers grounded questions and lists models.
	Search driving.SearchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Stores == nil {
		return ErrMissingStoreService
	}
	if p.Documents == nil {
		return ErrMissingDocumentService
	}
	if p.Media == nil {
		return ErrMissingMediaService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
