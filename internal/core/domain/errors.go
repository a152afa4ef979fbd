package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds raised by the outbound request core.
var (
	// ErrTransport indicates the upstream could not be reached (network failure, timeout).
	ErrTransport = errors.New("upstream transport failure")

	// ErrUpstreamHTTP indicates the upstream answered with a non-2xx status.
	ErrUpstreamHTTP = errors.New("upstream HTTP error")

	// ErrUpstreamReported indicates a 2xx response whose body carried an error object.
	ErrUpstreamReported = errors.New("upstream reported error")

	// ErrContentBlocked indicates the query was refused by upstream safety filtering.
	ErrContentBlocked = errors.New("content blocked")

	// ErrInvalidResponseShape indicates a 2xx response that was not the expected JSON shape.
	ErrInvalidResponseShape = errors.New("invalid response shape")

	// ErrProtocolViolation indicates the upstream broke the resumable upload protocol.
	ErrProtocolViolation = errors.New("upload protocol violation")
)

// Boundary errors raised before any network I/O or when mapping upstream results.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrFileTooLarge indicates an upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrExtensionNotAllowed indicates an upload has a disallowed file extension.
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
)

// UpstreamError describes a failed upstream exchange.
// It matches its Kind through errors.Is.
type UpstreamError struct {
	// Kind is one of the error kind sentinels above.
	Kind error

	// Op names the upstream operation, e.g. "POST /v1beta/fileSearchStores".
	Op string

	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Message is the upstream's error message.
	Message string

	// Body is the raw upstream response body, if any.
	Body string

	// Reason carries a block reason for ErrContentBlocked.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("upstream error")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	switch {
	case e.Reason != "":
		b.WriteString(": ")
		b.WriteString(e.Reason)
	case e.Message != "":
		b.WriteString(": ")
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports whether target is the error's Kind.
func (e *UpstreamError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// Unwrap returns the underlying cause.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsRateLimited returns true if the error signals upstream rate limiting.
func (e *UpstreamError) IsRateLimited() bool {
	if e.StatusCode == 429 {
		return true
	}
	return hasRateLimitMarker(e.Message) || hasRateLimitMarker(e.Body)
}

// IsRateLimited returns true if err signals upstream rate limiting.
// An *UpstreamError decides from its status, message and body only, so
// resource names in the operation or wrapping text never count. Other errors
// are scanned for known markers.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.IsRateLimited()
	}
	return hasRateLimitMarker(err.Error())
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode
	}
	return 0
}

func hasRateLimitMarker(msg string) bool {
	msg = strings.ToLower(msg)
	for _, marker := range []string{"429", "quota", "rate limit"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
