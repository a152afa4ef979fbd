package driving

import (
	"context"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// SearchService answers grounded questions over stores.
type SearchService interface {
	// Search asks a question grounded in the given stores.
	Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error)

	// ListModels returns the models that support content generation.
	ListModels(ctx context.Context) ([]domain.Model, error)
}
