package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for filesearch resources.
	uriScheme = "filesearch://"

	// resourcePageSize is the page size used when a resource lists everything.
	resourcePageSize = domain.MaxPageSize

	// maxResourcePages bounds how many pages a resource read follows.
	maxResourcePages = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing stores.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stores",
		Name:        "stores",
		Description: "List of all file search stores",
		MIMEType:    "application/json",
	}, s.handleStoresResource)

	// Template for store documents.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "stores/{storeId}/documents",
		Name:        "store-documents",
		Description: "Documents ingested into a specific store",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)
}

// handleStoresResource returns every store, following pagination.
func (s *Server) handleStoresResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Stores == nil {
		return jsonResource(req.Params.URI, []StoreOutput{})
	}

	stores := []StoreOutput{}
	page := domain.PageRequest{PageSize: resourcePageSize}
	for range maxResourcePages {
		list, err := s.ports.Stores.List(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("listing stores: %w", err)
		}
		for _, st := range list.Stores {
			stores = append(stores, storeOutput(st))
		}
		if list.NextPageToken == "" {
			break
		}
		page.PageToken = list.NextPageToken
	}

	return jsonResource(req.Params.URI, stores)
}

// handleDocumentsResource returns every document in a store.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Documents == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract storeId from URI: filesearch://stores/{storeId}/documents
	storeID := extractStoreID(req.Params.URI)
	if storeID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs := []DocumentOutput{}
	page := domain.PageRequest{PageSize: resourcePageSize}
	for range maxResourcePages {
		list, err := s.ports.Documents.List(ctx, storeID, page)
		if err != nil {
			return nil, fmt.Errorf("listing documents: %w", err)
		}
		for i := range list.Documents {
			docs = append(docs, documentOutput(list.Documents[i]))
		}
		if list.NextPageToken == "" {
			break
		}
		page.PageToken = list.NextPageToken
	}

	return jsonResource(req.Params.URI, docs)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractStoreID extracts the store ID from a URI like filesearch://stores/{storeId}/documents.
func extractStoreID(uri string) string {
	const prefix = uriScheme + "stores/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	id := strings.TrimSuffix(uri, suffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
