package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/filesearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/services"
)

// mockStoreService is a mock implementation of driving.StoreService.
type mockStoreService struct {
	store   *domain.Store
	list    *domain.StoreList
	err     error
	created string
	page    domain.PageRequest
	deleted string
	force   bool
}

func (m *mockStoreService) Create(_ context.Context, displayName string) (*domain.Store, error) {
	m.created = displayName
	return m.store, m.err
}

func (m *mockStoreService) List(_ context.Context, page domain.PageRequest) (*domain.StoreList, error) {
	m.page = page
	return m.list, m.err
}

func (m *mockStoreService) Get(_ context.Context, _ string) (*domain.Store, error) {
	return m.store, m.err
}

func (m *mockStoreService) Delete(_ context.Context, storeID string, force bool) error {
	m.deleted = storeID
	m.force = force
	return m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document *domain.Document
	list     *domain.DocumentList
	err      error
	storeID  string
	deleted  string
	force    bool
}

func (m *mockDocumentService) List(_ context.Context, storeID string, _ domain.PageRequest) (*domain.DocumentList, error) {
	m.storeID = storeID
	return m.list, m.err
}

func (m *mockDocumentService) Get(_ context.Context, storeID, _ string) (*domain.Document, error) {
	m.storeID = storeID
	return m.document, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, storeID, documentID string, force bool) error {
	m.storeID = storeID
	m.deleted = documentID
	m.force = force
	return m.err
}

// mockMediaService is a mock implementation of driving.MediaService.
// GetOperation returns ops in order, repeating the last one.
type mockMediaService struct {
	op       *domain.Operation
	ops      []*domain.Operation
	err      error
	upload   domain.UploadRequest
	imported domain.ImportRequest
	polls    int
}

func (m *mockMediaService) Upload(_ context.Context, req domain.UploadRequest) (*domain.Operation, error) {
	m.upload = req
	return m.op, m.err
}

func (m *mockMediaService) Import(_ context.Context, req domain.ImportRequest) (*domain.Operation, error) {
	m.imported = req
	return m.op, m.err
}

func (m *mockMediaService) GetOperation(_ context.Context, _ string) (*domain.Operation, error) {
	m.polls++
	if m.err != nil {
		return nil, m.err
	}
	if len(m.ops) == 0 {
		return m.op, nil
	}
	i := min(m.polls, len(m.ops)) - 1
	return m.ops[i], nil
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

type testServices struct {
	stores    *mockStoreService
	documents *mockDocumentService
	media     *mockMediaService
	search    *mockSearchService
	config    *memory.ConfigStore
}

// setupTestServices injects mocks and an in-memory config for the test.
func setupTestServices(t *testing.T, seed ...map[string]any) *testServices {
	t.Helper()

	ts := &testServices{
		stores:    &mockStoreService{},
		documents: &mockDocumentService{},
		media:     &mockMediaService{},
		search:    &mockSearchService{},
		config:    memory.NewConfigStore(seed...),
	}

	old := Services{
		Stores:    storeService,
		Documents: documentService,
		Media:     mediaService,
		Search:    searchService,
		Settings:  settingsService,
	}
	oldSettings := appSettings

	SetServices(Services{
		Stores:    ts.stores,
		Documents: ts.documents,
		Media:     ts.media,
		Search:    ts.search,
		Settings:  services.NewSettingsService(ts.config),
	})

	t.Cleanup(func() {
		SetServices(old)
		appSettings = oldSettings
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return ts
}

// resetFlags restores every flag in the command tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
