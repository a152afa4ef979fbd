// Package mcp provides an MCP (Model Context Protocol) server adapter for filesearch.
// It lets AI assistants ask grounded questions and browse stores.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// errUnavailable is returned by tools whose backing service was not provided.
var errUnavailable = errors.New("mcp: tool is not available")
