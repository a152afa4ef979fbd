package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
	"github.com/custodia-labs/filesearch/internal/core/ports/driving"
	"github.com/custodia-labs/filesearch/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages documents inside stores.
type DocumentService struct {
	upstream driven.Upstream
}

// NewDocumentService creates a new document service.
func NewDocumentService(upstream driven.Upstream) *DocumentService {
	return &DocumentService{upstream: upstream}
}

// List returns one page of documents in a store.
func (s *DocumentService) List(ctx context.Context, storeID string, page domain.PageRequest) (*domain.DocumentList, error) {
	if err := validateID("store", storeID); err != nil {
		return nil, err
	}

	list, err := call[domain.DocumentList](ctx, s.upstream, driven.Request{
		Method: http.MethodGet,
		Path:   apiVersion + domain.StoreName(storeID) + "/documents",
		Query:  pageQuery(page),
	})
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", storeID, err)
	}
	if list.Documents == nil {
		list.Documents = []domain.Document{}
	}
	return list, nil
}

// Get retrieves a document.
func (s *DocumentService) Get(ctx context.Context, storeID, documentID string) (*domain.Document, error) {
	if err := validateDocument(storeID, documentID); err != nil {
		return nil, err
	}

	doc, err := call[domain.Document](ctx, s.upstream, driven.Request{
		Method: http.MethodGet,
		Path:   apiVersion + domain.DocumentName(storeID, documentID),
	})
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	return doc, nil
}

// Delete removes a document. force also removes its chunks.
func (s *DocumentService) Delete(ctx context.Context, storeID, documentID string, force bool) error {
	if err := validateDocument(storeID, documentID); err != nil {
		return err
	}

	name := domain.DocumentName(storeID, documentID)
	_, err := s.upstream.Do(ctx, driven.Request{
		Method: http.MethodDelete,
		Path:   apiVersion + name,
		Query:  forceQuery(force),
	})
	if err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, mapError(err))
	}

	logger.Info("document deleted", "document", name, "force", force)
	return nil
}

func validateDocument(storeID, documentID string) error {
	if err := validateID("store", storeID); err != nil {
		return err
	}
	return validateID("document", documentID)
}
