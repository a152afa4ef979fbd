package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
	"github.com/custodia-labs/filesearch/internal/logger"
	"github.com/custodia-labs/filesearch/internal/retry"
)

// Ensure Client implements the interface.
var _ driven.Upstream = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = domain.DefaultBaseURL
	DefaultTimeout = domain.DefaultTimeout
)

// Upstream header names.
const (
	headerAPIKey = "X-Goog-Api-Key"
	headerType   = "Content-Type"
	jsonType     = "application/json"
)

// maxErrorBody bounds how much of an unexpected body is kept in errors.
const maxErrorBody = 2048

// Config holds configuration for the Gemini client.
type Config struct {
	// APIKey authenticates every request. Requests are still sent without one
	// so the upstream can report the problem.
	APIKey string

	// BaseURL is the API root (default: https://generativelanguage.googleapis.com).
	BaseURL string

	// Timeout bounds a single CRUD request (default: 60s).
	// Extended requests get twice this.
	Timeout time.Duration

	// Retry is applied to every request. RetryOn defaults to transport and HTTP errors.
	Retry retry.Policy

	// HTTPClient is the shared connection pool (default: a new http.Client).
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client configuration from application settings.
func ConfigFromSettings(s domain.Settings, hc *http.Client) Config {
	return Config{
		APIKey:  s.APIKey,
		BaseURL: s.BaseURL,
		Timeout: s.Timeout,
		Retry: retry.Policy{
			MaxAttempts: s.MaxRetries,
			MinDelay:    s.RetryDelay,
			MaxDelay:    s.MaxRetryDelay,
		},
		HTTPClient: hc,
	}
}

// Client sends JSON requests to the Gemini API.
// It holds only read-only configuration and is safe for concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	policy  retry.Policy
}

// NewClient creates a new Gemini client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("gemini: invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if len(cfg.Retry.RetryOn) == 0 {
		cfg.Retry.RetryOn = []error{domain.ErrTransport, domain.ErrUpstreamHTTP}
	}

	return &Client{
		http:    cfg.HTTPClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		policy:  cfg.Retry,
	}, nil
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs a JSON request with retry applied.
func (c *Client) Do(ctx context.Context, req driven.Request) (json.RawMessage, error) {
	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	body, err := retry.Do(ctx, c.policy, func(ctx context.Context) (json.RawMessage, error) {
		return c.once(ctx, req, payload)
	})
	if err != nil {
		logger.Error("upstream call failed", "op", req.Op(), "status", domain.StatusCode(err), "error", err.Error())
		return nil, err
	}
	return body, nil
}

// once performs a single attempt of req.
func (c *Client) once(ctx context.Context, req driven.Request, payload []byte) (json.RawMessage, error) {
	query := url.Values{}
	for k, v := range req.Query {
		query[k] = v
	}
	if req.KeyInQuery && c.apiKey != "" {
		query.Set("key", c.apiKey)
	}

	target := c.baseURL + req.Path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeoutFor(req.Extended))
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set(headerType, jsonType)
	if !req.KeyInQuery && c.apiKey != "" {
		httpReq.Header.Set(headerAPIKey, c.apiKey)
	}

	logger.Debug("upstream request", "op", req.Op(), "extended", req.Extended)

	body, _, err := c.exchange(httpReq, req.Op())
	if err != nil {
		return nil, err
	}
	return decodeJSON(req.Op(), body)
}

// exchange sends an HTTP request and reads the response.
// Failures are classified as transport or HTTP errors.
func (c *Client) exchange(req *http.Request, op string) ([]byte, http.Header, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &domain.UpstreamError{Kind: domain.ErrTransport, Op: op, Err: redactURLError(err)}
	}
	defer resp.Body.Close()

	if err := checkResponse(op, resp); err != nil {
		return nil, resp.Header, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.Header, &domain.UpstreamError{Kind: domain.ErrTransport, Op: op, Err: err}
	}
	return body, resp.Header, nil
}

// redactURLError hides the API key in the URL that *url.Error puts in its message.
func redactURLError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		return &url.Error{Op: uerr.Op, URL: "", Err: uerr.Err}
	}
	q := u.Query()
	if !q.Has("key") {
		return err
	}
	q.Set("key", "REDACTED")
	u.RawQuery = q.Encode()
	return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
}

func (c *Client) timeoutFor(extended bool) time.Duration {
	if extended {
		return 2 * c.timeout
	}
	return c.timeout
}

// decodeJSON validates a 2xx body. An empty body is treated as an empty object.
func decodeJSON(op string, body []byte) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(body) {
		return nil, &domain.UpstreamError{
			Kind:    domain.ErrInvalidResponseShape,
			Op:      op,
			Message: "response body is not JSON",
			Body:    truncate(string(body)),
		}
	}
	return json.RawMessage(body), nil
}

func truncate(s string) string {
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
