package domain

import "encoding/json"

// DefaultSearchModel is the generative model used when a query names none.
const DefaultSearchModel = "gemini-2.5-flash"

// NoAnswer is the answer reported when the upstream produced no text.
const NoAnswer = "No answer found."

// SearchQuery is a grounded natural-language question over one or more stores.
type SearchQuery struct {
	// Query is the question text.
	Query string `json:"query"`

	// StoreIDs lists the stores to ground the answer in.
	StoreIDs []string `json:"storeIds"`

	// MetadataFilter is an optional upstream filter expression.
	MetadataFilter string `json:"metadataFilter,omitempty"`

	// Model is the generative model (default: gemini-2.5-flash).
	Model string `json:"model,omitempty"`
}

// StoreNames returns the resource names of the queried stores.
func (q SearchQuery) StoreNames() []string {
	names := make([]string, len(q.StoreIDs))
	for i, id := range q.StoreIDs {
		names[i] = StoreName(id)
	}
	return names
}

// ModelOrDefault returns the requested model or DefaultSearchModel.
func (q SearchQuery) ModelOrDefault() string {
	if q.Model == "" {
		return DefaultSearchModel
	}
	return q.Model
}

// SearchResult is the normalised answer to a SearchQuery.
type SearchResult struct {
	// Answer is the generated text.
	Answer string `json:"answer"`

	// GroundingChunks are the source-attribution fragments, copied verbatim.
	GroundingChunks []json.RawMessage `json:"groundingChunks"`

	// Sources are unique source identifiers in first-seen order.
	Sources []string `json:"sources"`
}

// EmptySearchResult is the result for a response with no candidates.
func EmptySearchResult() *SearchResult {
	return &SearchResult{
		Answer:          NoAnswer,
		GroundingChunks: []json.RawMessage{},
		Sources:         []string{},
	}
}
