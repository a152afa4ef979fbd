package driving

import (
	"context"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// StoreService manages file search stores.
type StoreService interface {
	// Create creates a store with an optional display name.
	Create(ctx context.Context, displayName string) (*domain.Store, error)

	// List returns one page of stores.
	List(ctx context.Context, page domain.PageRequest) (*domain.StoreList, error)

	// Get retrieves a store by ID.
	Get(ctx context.Context, storeID string) (*domain.Store, error)

	// Delete removes a store. force also removes its documents.
	Delete(ctx context.Context, storeID string, force bool) error
}
