package driving

import (
	"context"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// MediaService ingests files into stores.
type MediaService interface {
	// Upload validates, uploads and imports a file into a store.
	// The returned operation tracks ingestion.
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.Operation, error)

	// Import imports an already-uploaded file into a store.
	Import(ctx context.Context, req domain.ImportRequest) (*domain.Operation, error)

	// GetOperation returns a fresh snapshot of an operation.
	GetOperation(ctx context.Context, name string) (*domain.Operation, error)
}
