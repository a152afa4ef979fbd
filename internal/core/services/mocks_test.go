package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
)

// --- Mock implementations ---

type mockResponse struct {
	body string
	err  error
}

// mockUpstream implements driven.Upstream with scripted responses keyed by
// "METHOD path".
type mockUpstream struct {
	mu        sync.Mutex
	requests  []driven.Request
	responses map[string]mockResponse
}

func newMockUpstream() *mockUpstream {
	return &mockUpstream{responses: make(map[string]mockResponse)}
}

func (m *mockUpstream) on(method, path, body string) *mockUpstream {
	m.responses[method+" "+path] = mockResponse{body: body}
	return m
}

func (m *mockUpstream) fail(method, path string, err error) *mockUpstream {
	m.responses[method+" "+path] = mockResponse{err: err}
	return m
}

func (m *mockUpstream) Do(_ context.Context, req driven.Request) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	r, ok := m.responses[req.Op()]
	if !ok {
		return nil, &domain.UpstreamError{Kind: domain.ErrUpstreamHTTP, Op: req.Op(), StatusCode: 404, Message: "no route"}
	}
	if r.err != nil {
		return nil, r.err
	}
	return json.RawMessage(r.body), nil
}

func (m *mockUpstream) last() driven.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

func (m *mockUpstream) ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.requests))
	for i, r := range m.requests {
		out[i] = r.Op()
	}
	return out
}

// mockUploader implements driven.FileUploader.
type mockUploader struct {
	file        *domain.UploadedFile
	err         error
	calls       int
	displayName string
}

func (m *mockUploader) Upload(_ context.Context, _ domain.FileContent, displayName string) (*domain.UploadedFile, error) {
	m.calls++
	m.displayName = displayName
	if m.err != nil {
		return nil, m.err
	}
	return m.file, nil
}

// mockNormaliser implements driven.ResponseNormaliser.
type mockNormaliser struct {
	result *domain.SearchResult
	err    error
	raw    []byte
}

func (m *mockNormaliser) Normalise(raw []byte) (*domain.SearchResult, error) {
	m.raw = raw
	return m.result, m.err
}

func httpError(status int, msg string) error {
	return &domain.UpstreamError{Kind: domain.ErrUpstreamHTTP, StatusCode: status, Message: msg}
}
