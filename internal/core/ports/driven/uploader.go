package driven

import (
	"context"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// FileUploader transfers raw file bytes to the upstream file service.
type FileUploader interface {
	// Upload starts a resumable session and sends the content in one
	// upload+finalize request. A failed attempt restarts from the start.
	Upload(ctx context.Context, file domain.FileContent, displayName string) (*domain.UploadedFile, error)
}
