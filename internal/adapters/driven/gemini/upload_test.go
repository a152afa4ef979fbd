package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// fakeUploadServer implements the resumable upload endpoints.
type fakeUploadServer struct {
	*httptest.Server
	starts     atomic.Int32
	finalizes  atomic.Int32
	omitURL    bool
	failFirst  bool
	finalBody  string
	lastLength string
}

func newFakeUploadServer(t *testing.T) *fakeUploadServer {
	t.Helper()
	f := &fakeUploadServer{finalBody: `{"file":{"name":"files/abc","mimeType":"text/plain","sizeBytes":"5"}}`}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload/v1beta/files", func(w http.ResponseWriter, r *http.Request) {
		f.starts.Add(1)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Equal(t, "resumable", r.Header.Get("X-Goog-Upload-Protocol"))
		assert.Equal(t, "start", r.Header.Get("X-Goog-Upload-Command"))
		f.lastLength = r.Header.Get("X-Goog-Upload-Header-Content-Length")

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"file":{"displayName":"notes.txt"}}`, string(body))

		if !f.omitURL {
			w.Header().Set("X-Goog-Upload-URL", f.URL+"/session/abc")
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /session/abc", func(w http.ResponseWriter, r *http.Request) {
		n := f.finalizes.Add(1)
		assert.Equal(t, "upload, finalize", r.Header.Get("X-Goog-Upload-Command"))
		assert.Equal(t, "0", r.Header.Get("X-Goog-Upload-Offset"))
		assert.Equal(t, int64(5), r.ContentLength)

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "hello", string(body))

		if f.failFirst && n == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(f.finalBody))
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func textFile() domain.FileContent {
	return domain.FileContent{Name: "notes.txt", Data: []byte("hello")}
}

func TestUploader_Upload(t *testing.T) {
	srv := newFakeUploadServer(t)
	u := NewUploader(newTestClient(t, srv.URL))

	file, err := u.Upload(context.Background(), textFile(), "")

	require.NoError(t, err)
	assert.Equal(t, "files/abc", file.Name)
	assert.Equal(t, "text/plain", file.MIMEType)
	assert.Equal(t, domain.Int64(5), file.SizeBytes)
	assert.Equal(t, "5", srv.lastLength)
	assert.Equal(t, int32(1), srv.starts.Load())
	assert.Equal(t, int32(1), srv.finalizes.Load())
}

func TestUploader_MissingUploadURL(t *testing.T) {
	srv := newFakeUploadServer(t)
	srv.omitURL = true
	u := NewUploader(newTestClient(t, srv.URL))

	_, err := u.Upload(context.Background(), textFile(), "notes.txt")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProtocolViolation)
	assert.Equal(t, int32(1), srv.starts.Load())
	assert.Equal(t, int32(0), srv.finalizes.Load())
}

func TestUploader_RetryRestartsFromStart(t *testing.T) {
	srv := newFakeUploadServer(t)
	srv.failFirst = true
	u := NewUploader(newTestClient(t, srv.URL))

	file, err := u.Upload(context.Background(), textFile(), "")

	require.NoError(t, err)
	assert.Equal(t, "files/abc", file.Name)
	assert.Equal(t, int32(2), srv.starts.Load())
	assert.Equal(t, int32(2), srv.finalizes.Load())
}

func TestUploader_BareFileResource(t *testing.T) {
	srv := newFakeUploadServer(t)
	srv.finalBody = `{"name":"files/bare","displayName":"notes.txt"}`
	u := NewUploader(newTestClient(t, srv.URL))

	file, err := u.Upload(context.Background(), textFile(), "")

	require.NoError(t, err)
	assert.Equal(t, "files/bare", file.Name)
	assert.Equal(t, "notes.txt", file.DisplayName)
}

func TestUploader_ResponseWithoutName(t *testing.T) {
	srv := newFakeUploadServer(t)
	srv.finalBody = `{"file":{}}`
	u := NewUploader(newTestClient(t, srv.URL))

	_, err := u.Upload(context.Background(), textFile(), "")

	assert.ErrorIs(t, err, domain.ErrInvalidResponseShape)
	assert.Equal(t, int32(1), srv.starts.Load())
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		declared string
		want     string
	}{
		{"declared wins", "a.txt", "application/pdf", "application/pdf"},
		{"declared params stripped", "a.txt", "text/plain; charset=utf-8", "text/plain"},
		{"pdf", "report.PDF", "", "application/pdf"},
		{"markdown", "README.md", "", "text/markdown"},
		{"docx", "a.docx", "", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"no extension", "Makefile", "", DefaultMIMEType},
		{"unknown extension", "blob.zzzunknown", "", DefaultMIMEType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMIMEType(tt.file, tt.declared))
		})
	}
}
