package rest

import (
	"context"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// mockStoreService is a mock implementation of driving.StoreService.
type mockStoreService struct {
	store       *domain.Store
	list        *domain.StoreList
	err         error
	created     string
	page        domain.PageRequest
	gotID       string
	deleteForce bool
}

func (m *mockStoreService) Create(_ context.Context, displayName string) (*domain.Store, error) {
	m.created = displayName
	return m.store, m.err
}

func (m *mockStoreService) List(_ context.Context, page domain.PageRequest) (*domain.StoreList, error) {
	m.page = page
	return m.list, m.err
}

func (m *mockStoreService) Get(_ context.Context, storeID string) (*domain.Store, error) {
	m.gotID = storeID
	return m.store, m.err
}

func (m *mockStoreService) Delete(_ context.Context, storeID string, force bool) error {
	m.gotID = storeID
	m.deleteForce = force
	return m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document    *domain.Document
	list        *domain.DocumentList
	err         error
	storeID     string
	documentID  string
	page        domain.PageRequest
	deleteForce bool
}

func (m *mockDocumentService) List(_ context.Context, storeID string, page domain.PageRequest) (*domain.DocumentList, error) {
	m.storeID = storeID
	m.page = page
	return m.list, m.err
}

func (m *mockDocumentService) Get(_ context.Context, storeID, documentID string) (*domain.Document, error) {
	m.storeID = storeID
	m.documentID = documentID
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, storeID, documentID string, force bool) error {
	m.storeID = storeID
	m.documentID = documentID
	m.deleteForce = force
	return m.err
}

// mockMediaService is a mock implementation of driving.MediaService.
type mockMediaService struct {
	op        *domain.Operation
	err       error
	upload    domain.UploadRequest
	imported  domain.ImportRequest
	operation string
}

func (m *mockMediaService) Upload(_ context.Context, req domain.UploadRequest) (*domain.Operation, error) {
	m.upload = req
	return m.op, m.err
}

func (m *mockMediaService) Import(_ context.Context, req domain.ImportRequest) (*domain.Operation, error) {
	m.imported = req
	return m.op, m.err
}

func (m *mockMediaService) GetOperation(_ context.Context, name string) (*domain.Operation, error) {
	m.operation = name
	return m.op, m.err
}

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

type testPorts struct {
	stores    *mockStoreService
	documents *mockDocumentService
	media     *mockMediaService
	search    *mockSearchService
}

func newTestPorts() *testPorts {
	return &testPorts{
		stores:    &mockStoreService{},
		documents: &mockDocumentService{},
		media:     &mockMediaService{},
		search:    &mockSearchService{},
	}
}

func (p *testPorts) ports() *Ports {
	return &Ports{
		Stores:    p.stores,
		Documents: p.documents,
		Media:     p.media,
		Search:    p.search,
	}
}
