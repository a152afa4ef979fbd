package mcp

import (
	"context"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result *domain.SearchResult
	models []domain.Model
	err    error
	query  domain.SearchQuery
}

func (m *mockSearchService) Search(_ context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	m.query = query
	return m.result, m.err
}

func (m *mockSearchService) ListModels(_ context.Context) ([]domain.Model, error) {
	return m.models, m.err
}

// mockStoreService is a mock implementation of driving.StoreService.
// It serves pages in order, keyed by page token ("" is the first page).
type mockStoreService struct {
	pages map[string]*domain.StoreList
	err   error
	calls []domain.PageRequest
}

func (m *mockStoreService) Create(_ context.Context, _ string) (*domain.Store, error) {
	return nil, m.err
}

func (m *mockStoreService) List(_ context.Context, page domain.PageRequest) (*domain.StoreList, error) {
	m.calls = append(m.calls, page)
	if m.err != nil {
		return nil, m.err
	}
	if list, ok := m.pages[page.PageToken]; ok {
		return list, nil
	}
	return &domain.StoreList{Stores: []domain.Store{}}, nil
}

func (m *mockStoreService) Get(_ context.Context, _ string) (*domain.Store, error) {
	return nil, m.err
}

func (m *mockStoreService) Delete(_ context.Context, _ string, _ bool) error {
	return m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	pages   map[string]*domain.DocumentList
	err     error
	storeID string
	calls   []domain.PageRequest
}

func (m *mockDocumentService) List(_ context.Context, storeID string, page domain.PageRequest) (*domain.DocumentList, error) {
	m.storeID = storeID
	m.calls = append(m.calls, page)
	if m.err != nil {
		return nil, m.err
	}
	if list, ok := m.pages[page.PageToken]; ok {
		return list, nil
	}
	return &domain.DocumentList{Documents: []domain.Document{}}, nil
}

func (m *mockDocumentService) Get(_ context.Context, _, _ string) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _, _ string, _ bool) error {
	return m.err
}

// mockMediaService is a mock implementation of driving.MediaService.
type mockMediaService struct {
	op   *domain.Operation
	err  error
	name string
}

func (m *mockMediaService) Upload(_ context.Context, _ domain.UploadRequest) (*domain.Operation, error) {
	return m.op, m.err
}

func (m *mockMediaService) Import(_ context.Context, _ domain.ImportRequest) (*domain.Operation, error) {
	return m.op, m.err
}

func (m *mockMediaService) GetOperation(_ context.Context, name string) (*domain.Operation, error) {
	m.name = name
	return m.op, m.err
}
