package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchQuery_ModelOrDefault(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", SearchQuery{}.ModelOrDefault())
	assert.Equal(t, "gemini-2.5-pro", SearchQuery{Model: "gemini-2.5-pro"}.ModelOrDefault())
}

func TestSearchQuery_StoreNames(t *testing.T) {
	q := SearchQuery{StoreIDs: []string{"a", "b"}}
	assert.Equal(t, []string{"fileSearchStores/a", "fileSearchStores/b"}, q.StoreNames())
	assert.Empty(t, SearchQuery{}.StoreNames())
}

func TestEmptySearchResult(t *testing.T) {
	r := EmptySearchResult()
	assert.Equal(t, NoAnswer, r.Answer)
	assert.NotNil(t, r.GroundingChunks)
	assert.Empty(t, r.GroundingChunks)
	assert.NotNil(t, r.Sources)
	assert.Empty(t, r.Sources)

	data, err := json.Marshal(r)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"answer":"No answer found.","groundingChunks":[],"sources":[]}`, string(data))
}

func TestModel_SupportsGeneration(t *testing.T) {
	assert.True(t, Model{SupportedMethods: []string{"countTokens", "generateContent"}}.SupportsGeneration())
	assert.False(t, Model{SupportedMethods: []string{"embedContent"}}.SupportsGeneration())
	assert.False(t, Model{}.SupportsGeneration())
}
