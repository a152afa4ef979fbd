package driven

import (
	"context"
	"encoding/json"
	"net/url"
)

// Request describes one JSON call to the upstream API.
type Request struct {
	// Method is the HTTP method.
	Method string

	// Path is appended to the base URL, e.g. "/v1beta/fileSearchStores".
	Path string

	// Query holds optional query parameters.
	Query url.Values

	// Body is JSON-encoded when non-nil.
	Body any

	// Extended doubles the per-call timeout (uploads and searches).
	Extended bool

	// KeyInQuery sends the API key as ?key= instead of a header.
	KeyInQuery bool
}

// Op returns a short description used in logs and errors.
func (r Request) Op() string {
	return r.Method + " " + r.Path
}

// Upstream sends requests to the upstream API.
// Implementations apply the retry policy and classify failures
// as *domain.UpstreamError.
type Upstream interface {
	// Do performs the request and returns the decoded JSON body.
	// An empty 2xx body is returned as "{}".
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}
