package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query          string   `json:"query" jsonschema:"the question to answer from the stores"`
	StoreIDs       []string `json:"store_ids" jsonschema:"IDs of the file search stores to ground the answer in"`
	MetadataFilter string   `json:"metadata_filter,omitempty" jsonschema:"optional metadata filter expression"`
	Model          string   `json:"model,omitempty" jsonschema:"generative model (default gemini-2.5-flash)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Answer          string           `json:"answer"`
	Sources         []string         `json:"sources"`
	GroundingChunks []map[string]any `json:"grounding_chunks"`
}

// PageInput selects one page of a listing.
type PageInput struct {
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum items to return (1-20, default 10)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous listing"`
}

// StoreOutput is a single store in tool output.
type StoreOutput struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	DisplayName           string `json:"display_name,omitempty"`
	ActiveDocumentsCount  int64  `json:"active_documents_count"`
	PendingDocumentsCount int64  `json:"pending_documents_count"`
	FailedDocumentsCount  int64  `json:"failed_documents_count"`
	SizeBytes             int64  `json:"size_bytes"`
	UpdateTime            string `json:"update_time,omitempty"`
}

// ListStoresOutput is the output schema for the list_stores tool.
type ListStoresOutput struct {
	Stores        []StoreOutput `json:"stores"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	StoreID   string `json:"store_id" jsonschema:"ID of the store to list"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum items to return (1-20, default 10)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous listing"`
}

// DocumentOutput is a single document in tool output.
type DocumentOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	State       string `json:"state"`
	MIMEType    string `json:"mime_type,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents     []DocumentOutput `json:"documents"`
	NextPageToken string           `json:"next_page_token,omitempty"`
}

// GetOperationInput is the input schema for the get_operation tool.
type GetOperationInput struct {
	Name string `json:"name" jsonschema:"operation resource name returned by an upload or import"`
}

// OperationOutput is the output schema for the get_operation tool.
type OperationOutput struct {
	Name         string `json:"name"`
	Done         bool   `json:"done"`
	Failed       bool   `json:"failed"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// ListModelsInput is the (empty) input schema for the list_models tool.
type ListModelsInput struct{}

// ModelOutput is a single model in tool output.
type ModelOutput struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListModelsOutput is the output schema for the list_models tool.
type ListModelsOutput struct {
	Models []ModelOutput `json:"models"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Answer a question grounded in one or more file search stores",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_stores",
		Description: "List file search stores",
	}, s.handleListStores)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_documents",
		Description: "List documents in a file search store",
	}, s.handleListDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_operation",
		Description: "Get the status of an upload or import operation",
	}, s.handleGetOperation)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_models",
		Description: "List models that can answer searches",
	}, s.handleListModels)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	result, err := s.ports.Search.Search(ctx, domain.SearchQuery{
		Query:          input.Query,
		StoreIDs:       input.StoreIDs,
		MetadataFilter: input.MetadataFilter,
		Model:          input.Model,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Answer:          result.Answer,
		Sources:         append([]string{}, result.Sources...),
		GroundingChunks: make([]map[string]any, 0, len(result.GroundingChunks)),
	}
	for _, raw := range result.GroundingChunks {
		var chunk map[string]any
		if err := json.Unmarshal(raw, &chunk); err != nil {
			return nil, SearchOutput{}, fmt.Errorf("decoding grounding chunk: %w", err)
		}
		output.GroundingChunks = append(output.GroundingChunks, chunk)
	}

	return nil, output, nil
}

// handleListStores handles the list_stores tool invocation.
func (s *Server) handleListStores(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PageInput,
) (*mcp.CallToolResult, ListStoresOutput, error) {
	if s.ports.Stores == nil {
		return nil, ListStoresOutput{}, errUnavailable
	}

	list, err := s.ports.Stores.List(ctx, domain.PageRequest{PageSize: input.PageSize, PageToken: input.PageToken})
	if err != nil {
		return nil, ListStoresOutput{}, err
	}

	output := ListStoresOutput{
		Stores:        make([]StoreOutput, len(list.Stores)),
		NextPageToken: list.NextPageToken,
	}
	for i, st := range list.Stores {
		output.Stores[i] = storeOutput(st)
	}
	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if s.ports.Documents == nil {
		return nil, ListDocumentsOutput{}, errUnavailable
	}

	list, err := s.ports.Documents.List(ctx, input.StoreID,
		domain.PageRequest{PageSize: input.PageSize, PageToken: input.PageToken})
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents:     make([]DocumentOutput, len(list.Documents)),
		NextPageToken: list.NextPageToken,
	}
	for i := range list.Documents {
		output.Documents[i] = documentOutput(list.Documents[i])
	}
	return nil, output, nil
}

// handleGetOperation handles the get_operation tool invocation.
func (s *Server) handleGetOperation(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetOperationInput,
) (*mcp.CallToolResult, OperationOutput, error) {
	if s.ports.Media == nil {
		return nil, OperationOutput{}, errUnavailable
	}

	op, err := s.ports.Media.GetOperation(ctx, input.Name)
	if err != nil {
		return nil, OperationOutput{}, err
	}

	output := OperationOutput{Name: op.Name, Done: op.Done, Failed: op.Failed()}
	if op.Error != nil {
		output.ErrorMessage = op.Error.Message
	}
	return nil, output, nil
}

// handleListModels handles the list_models tool invocation.
func (s *Server) handleListModels(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListModelsInput,
) (*mcp.CallToolResult, ListModelsOutput, error) {
	models, err := s.ports.Search.ListModels(ctx)
	if err != nil {
		return nil, ListModelsOutput{}, err
	}

	output := ListModelsOutput{Models: make([]ModelOutput, len(models))}
	for i, m := range models {
		output.Models[i] = ModelOutput{Name: m.Name, DisplayName: m.DisplayName, Description: m.Description}
	}
	return nil, output, nil
}

func storeOutput(st domain.Store) StoreOutput {
	out := StoreOutput{
		ID:                    st.ID(),
		Name:                  st.Name,
		DisplayName:           st.DisplayName,
		ActiveDocumentsCount:  int64(st.ActiveDocumentsCount),
		PendingDocumentsCount: int64(st.PendingDocumentsCount),
		FailedDocumentsCount:  int64(st.FailedDocumentsCount),
		SizeBytes:             int64(st.SizeBytes),
	}
	if !st.UpdateTime.IsZero() {
		out.UpdateTime = st.UpdateTime.Format(time.RFC3339)
	}
	return out
}

func documentOutput(d domain.Document) DocumentOutput {
	return DocumentOutput{
		ID:          d.ID(),
		Name:        d.Name,
		DisplayName: d.DisplayName,
		State:       d.State.String(),
		MIMEType:    d.MIMEType,
		SizeBytes:   int64(d.SizeBytes),
	}
}
