package driving

import (
	"context"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// DocumentService manages documents inside a store.
type DocumentService interface {
	// List returns one page of documents in a store.
	List(ctx context.Context, storeID string, page domain.PageRequest) (*domain.DocumentList, error)

	// Get retrieves a document by store and document ID.
	Get(ctx context.Context, storeID, documentID string) (*domain.Document, error)

	// Delete removes a document. force also removes its chunks.
	Delete(ctx context.Context, storeID, documentID string, force bool) error
}
