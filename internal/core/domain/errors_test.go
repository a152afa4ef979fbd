package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrTransport", ErrTransport},
		{"ErrUpstreamHTTP", ErrUpstreamHTTP},
		{"ErrUpstreamReported", ErrUpstreamReported},
		{"ErrContentBlocked", ErrContentBlocked},
		{"ErrInvalidResponseShape", ErrInvalidResponseShape},
		{"ErrProtocolViolation", ErrProtocolViolation},
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrFileTooLarge", ErrFileTooLarge},
		{"ErrExtensionNotAllowed", ErrExtensionNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestUpstreamError_IsKind(t *testing.T) {
	err := &UpstreamError{Kind: ErrUpstreamHTTP, StatusCode: 500, Message: "internal"}

	assert.True(t, errors.Is(err, ErrUpstreamHTTP))
	assert.False(t, errors.Is(err, ErrTransport))

	wrapped := fmt.Errorf("create store: %w", err)
	assert.True(t, errors.Is(wrapped, ErrUpstreamHTTP))

	var ue *UpstreamError
	assert.True(t, errors.As(wrapped, &ue))
	assert.Equal(t, 500, ue.StatusCode)
}

func TestUpstreamError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &UpstreamError{Kind: ErrTransport, Err: cause}

	assert.True(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUpstreamError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UpstreamError
		want string
	}{
		{
			name: "status and message",
			err:  &UpstreamError{Kind: ErrUpstreamHTTP, Op: "GET /v1beta/x", StatusCode: 404, Message: "missing"},
			want: "GET /v1beta/x: upstream HTTP error (status 404): missing",
		},
		{
			name: "reason wins over message",
			err:  &UpstreamError{Kind: ErrContentBlocked, Reason: "SAFETY", Message: "ignored"},
			want: "content blocked: SAFETY",
		},
		{
			name: "no kind",
			err:  &UpstreamError{},
			want: "upstream error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"status 429", &UpstreamError{Kind: ErrUpstreamHTTP, StatusCode: 429}, true},
		{"quota message", &UpstreamError{Kind: ErrUpstreamHTTP, StatusCode: 400, Message: "Quota exceeded"}, true},
		{"rate limit message", errors.New("Rate limit hit"), true},
		{"429 in text", errors.New("got 429 from upstream"), true},
		{"other status", &UpstreamError{Kind: ErrUpstreamHTTP, StatusCode: 500, Message: "boom"}, false},
		{"plain error", errors.New("boom"), false},
		{"quota in body", &UpstreamError{Kind: ErrUpstreamHTTP, StatusCode: 400, Body: `{"error":{"status":"QUOTA_EXCEEDED"}}`}, true},
		{
			"resource name with 429",
			fmt.Errorf("get store invoices-1429: %w", &UpstreamError{
				Kind: ErrUpstreamHTTP, Op: "GET /v1beta/fileSearchStores/invoices-1429", StatusCode: 403, Message: "Permission denied",
			}),
			false,
		},
		{
			"resource name with quota",
			fmt.Errorf("get store quota-docs: %w", &UpstreamError{
				Kind: ErrUpstreamHTTP, Op: "GET /v1beta/fileSearchStores/quota-docs", StatusCode: 403, Message: "Permission denied",
			}),
			false,
		},
		{
			"transport address with 429",
			&UpstreamError{Kind: ErrTransport, Op: "GET /v1beta/x", Err: errors.New("dial tcp 127.0.0.1:42901: connection refused")},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRateLimited(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 0, StatusCode(errors.New("x")))
	assert.Equal(t, 503, StatusCode(fmt.Errorf("wrap: %w", &UpstreamError{StatusCode: 503})))
}
