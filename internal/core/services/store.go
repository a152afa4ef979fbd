package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
	"github.com/custodia-labs/filesearch/internal/core/ports/driving"
	"github.com/custodia-labs/filesearch/internal/logger"
)

// Ensure StoreService implements the interface.
var _ driving.StoreService = (*StoreService)(nil)

// StoreService manages file search stores.
type StoreService struct {
	upstream driven.Upstream
}

// NewStoreService creates a new store service.
func NewStoreService(upstream driven.Upstream) *StoreService {
	return &StoreService{upstream: upstream}
}

// Create creates a store with an optional display name.
func (s *StoreService) Create(ctx context.Context, displayName string) (*domain.Store, error) {
	displayName = strings.TrimSpace(displayName)
	if utf8.RuneCountInString(displayName) > domain.MaxDisplayNameLength {
		return nil, fmt.Errorf("%w: display name exceeds %d characters", domain.ErrInvalidInput, domain.MaxDisplayNameLength)
	}

	body := map[string]string{}
	if displayName != "" {
		body["displayName"] = displayName
	}

	store, err := call[domain.Store](ctx, s.upstream, driven.Request{
		Method: http.MethodPost,
		Path:   apiVersion + domain.StoreCollection,
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	logger.Info("store created", "store", store.Name)
	return store, nil
}

// List returns one page of stores.
func (s *StoreService) List(ctx context.Context, page domain.PageRequest) (*domain.StoreList, error) {
	list, err := call[domain.StoreList](ctx, s.upstream, driven.Request{
		Method: http.MethodGet,
		Path:   apiVersion + domain.StoreCollection,
		Query:  pageQuery(page),
	})
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	if list.Stores == nil {
		list.Stores = []domain.Store{}
	}
	return list, nil
}

// Get retrieves a store by ID.
func (s *StoreService) Get(ctx context.Context, storeID string) (*domain.Store, error) {
	if err := validateID("store", storeID); err != nil {
		return nil, err
	}

	store, err := call[domain.Store](ctx, s.upstream, driven.Request{
		Method: http.MethodGet,
		Path:   apiVersion + domain.StoreName(storeID),
	})
	if err != nil {
		return nil, fmt.Errorf("get store %s: %w", storeID, err)
	}
	return store, nil
}

// Delete removes a store. force also removes its documents.
func (s *StoreService) Delete(ctx context.Context, storeID string, force bool) error {
	if err := validateID("store", storeID); err != nil {
		return err
	}

	_, err := s.upstream.Do(ctx, driven.Request{
		Method: http.MethodDelete,
		Path:   apiVersion + domain.StoreName(storeID),
		Query:  forceQuery(force),
	})
	if err != nil {
		return fmt.Errorf("delete store %s: %w", storeID, mapError(err))
	}

	logger.Info("store deleted", "store", domain.StoreName(storeID), "force", force)
	return nil
}
