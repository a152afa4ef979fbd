package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
	"github.com/custodia-labs/filesearch/internal/core/ports/driving"
	"github.com/custodia-labs/filesearch/internal/logger"
)

// Ensure MediaService implements the interface.
var _ driving.MediaService = (*MediaService)(nil)

// cleanupTimeout bounds the best-effort deletion of an orphaned upload.
const cleanupTimeout = 30 * time.Second

// filesCollection holds raw uploaded files.
const filesCollection = "files/"

// MediaService uploads and imports files into stores.
type MediaService struct {
	upstream driven.Upstream
	uploader driven.FileUploader
	settings domain.Settings
}

// NewMediaService creates a new media service.
// Upload limits are taken from settings.
func NewMediaService(upstream driven.Upstream, uploader driven.FileUploader, settings domain.Settings) *MediaService {
	return &MediaService{
		upstream: upstream,
		uploader: uploader,
		settings: settings,
	}
}

// Upload validates the file, uploads it and imports it into the store.
// The operation is returned only once the import has been accepted. When the
// import fails the uploaded file is deleted on a best-effort basis and the
// import error is returned.
func (s *MediaService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.Operation, error) {
	if err := s.validateUpload(req); err != nil {
		return nil, err
	}

	chunking := req.Chunking.WithDefaults()
	logger.Debug("chunking config accepted but not applied upstream",
		"max_tokens_per_chunk", chunking.MaxTokensPerChunk,
		"max_overlap_tokens", chunking.MaxOverlapTokens,
	)

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = req.File.Name
	}

	file, err := s.uploader.Upload(ctx, req.File, displayName)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", req.File.Name, err)
	}

	op, err := s.importFile(ctx, req.StoreID, file.Name, req.CustomMetadata)
	if err != nil {
		s.deleteOrphan(ctx, file.Name)
		return nil, err
	}
	return op, nil
}

// Import imports an already-uploaded file into a store.
func (s *MediaService) Import(ctx context.Context, req domain.ImportRequest) (*domain.Operation, error) {
	if err := validateID("store", req.StoreID); err != nil {
		return nil, err
	}
	if err := validateMetadata(req.CustomMetadata); err != nil {
		return nil, err
	}

	fileName := strings.TrimSpace(req.FileName)
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(fileName, filesCollection) {
		if err := validateID("file", fileName); err != nil {
			return nil, err
		}
		fileName = filesCollection + fileName
	}

	chunking := req.Chunking.WithDefaults()
	logger.Debug("chunking config accepted but not applied upstream",
		"max_tokens_per_chunk", chunking.MaxTokensPerChunk,
		"max_overlap_tokens", chunking.MaxOverlapTokens,
	)

	return s.importFile(ctx, req.StoreID, fileName, req.CustomMetadata)
}

// GetOperation returns a fresh snapshot of an operation.
func (s *MediaService) GetOperation(ctx context.Context, name string) (*domain.Operation, error) {
	name = strings.Trim(strings.TrimSpace(name), "/")
	if name == "" {
		return nil, fmt.Errorf("%w: operation name is required", domain.ErrInvalidInput)
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == "" || segment == "." || segment == ".." || strings.ContainsAny(segment, "?#") {
			return nil, fmt.Errorf("%w: invalid operation name %q", domain.ErrInvalidInput, name)
		}
	}

	op, err := call[domain.Operation](ctx, s.upstream, driven.Request{
		Method: http.MethodGet,
		Path:   apiVersion + name,
	})
	if err != nil {
		return nil, fmt.Errorf("get operation %s: %w", name, err)
	}
	return op, nil
}

// importFile issues the importFile call for an uploaded file.
func (s *MediaService) importFile(
	ctx context.Context,
	storeID, fileName string,
	metadata []domain.CustomMetadata,
) (*domain.Operation, error) {
	body := map[string]any{"fileName": fileName}
	if len(metadata) > 0 {
		body["customMetadata"] = metadata
	}

	op, err := call[domain.Operation](ctx, s.upstream, driven.Request{
		Method: http.MethodPost,
		Path:   apiVersion + domain.StoreName(storeID) + ":importFile",
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("import %s into %s: %w", fileName, storeID, err)
	}

	logger.Info("import started", "store", domain.StoreName(storeID), "file", fileName, "operation", op.Name)
	return op, nil
}

// deleteOrphan removes an uploaded file whose import failed.
// It outlives cancellation of ctx and never fails the caller.
func (s *MediaService) deleteOrphan(ctx context.Context, fileName string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	_, err := s.upstream.Do(ctx, driven.Request{
		Method: http.MethodDelete,
		Path:   apiVersion + fileName,
	})
	if err != nil {
		logger.Warn("orphaned upload not deleted", "file", fileName, "error", err.Error())
		return
	}
	logger.Info("orphaned upload deleted", "file", fileName)
}

func (s *MediaService) validateUpload(req domain.UploadRequest) error {
	if err := validateID("store", req.StoreID); err != nil {
		return err
	}
	if strings.TrimSpace(req.File.Name) == "" {
		return fmt.Errorf("%w: file name is required", domain.ErrInvalidInput)
	}
	if !s.settings.IsExtensionAllowed(req.File.Ext()) {
		return fmt.Errorf("%w: %q (allowed: %s)", domain.ErrExtensionNotAllowed,
			req.File.Ext(), strings.Join(s.settings.AllowedExtensions, ", "))
	}
	if req.File.Size() > s.settings.MaxUploadSize {
		return fmt.Errorf("%w: %d bytes exceeds the %d byte limit",
			domain.ErrFileTooLarge, req.File.Size(), s.settings.MaxUploadSize)
	}
	if req.File.Size() == 0 {
		return fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.DisplayName) > domain.MaxDisplayNameLength {
		return fmt.Errorf("%w: display name exceeds %d characters", domain.ErrInvalidInput, domain.MaxDisplayNameLength)
	}
	return validateMetadata(req.CustomMetadata)
}

func validateMetadata(metadata []domain.CustomMetadata) error {
	if len(metadata) > domain.MaxCustomMetadata {
		return fmt.Errorf("%w: at most %d custom metadata entries", domain.ErrInvalidInput, domain.MaxCustomMetadata)
	}
	for _, m := range metadata {
		if strings.TrimSpace(m.Key) == "" {
			return fmt.Errorf("%w: custom metadata key is required", domain.ErrInvalidInput)
		}
		set := 0
		if m.StringValue != nil {
			set++
		}
		if m.StringListValue != nil {
			set++
		}
		if m.NumericValue != nil {
			set++
		}
		if set != 1 {
			return fmt.Errorf("%w: custom metadata %q must have exactly one value", domain.ErrInvalidInput, m.Key)
		}
	}
	return nil
}
