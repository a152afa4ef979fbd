package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceNames(t *testing.T) {
	assert.Equal(t, "fileSearchStores/abc", StoreName("abc"))
	assert.Equal(t, "fileSearchStores/abc/documents/d1", DocumentName("abc", "d1"))
	assert.Equal(t, "d1", TrailingID("fileSearchStores/abc/documents/d1"))
	assert.Equal(t, "plain", TrailingID("plain"))
}

func TestDocumentState_IsTerminal(t *testing.T) {
	assert.False(t, DocumentStateUnspecified.IsTerminal())
	assert.False(t, DocumentStatePending.IsTerminal())
	assert.True(t, DocumentStateActive.IsTerminal())
	assert.True(t, DocumentStateFailed.IsTerminal())
}

func TestDocument_UnmarshalUpstream(t *testing.T) {
	raw := `{
		"name": "fileSearchStores/s1/documents/d1",
		"displayName": "report.pdf",
		"customMetadata": [{"key": "author", "stringValue": "ann"}, {"key": "year", "numericValue": 2024}],
		"createTime": "2025-01-02T03:04:05Z",
		"updateTime": "2025-01-02T03:04:06.123456Z",
		"state": "STATE_ACTIVE",
		"sizeBytes": "2048",
		"mimeType": "application/pdf"
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "d1", doc.ID())
	assert.Equal(t, DocumentStateActive, doc.State)
	assert.Equal(t, Int64(2048), doc.SizeBytes)
	require.Len(t, doc.CustomMetadata, 2)
	assert.Equal(t, "ann", *doc.CustomMetadata[0].StringValue)
	assert.InDelta(t, 2024, *doc.CustomMetadata[1].NumericValue, 0)
	assert.Equal(t, 2025, doc.CreateTime.Year())
}

func TestStore_UnmarshalUpstream(t *testing.T) {
	raw := `{"name":"fileSearchStores/s1","displayName":"Docs","activeDocumentsCount":3,"pendingDocumentsCount":"1"}`

	var s Store
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, "s1", s.ID())
	assert.Equal(t, Int64(3), s.ActiveDocumentsCount)
	assert.Equal(t, Int64(1), s.PendingDocumentsCount)
	assert.Equal(t, Int64(0), s.SizeBytes)
}

func TestInt64_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    Int64
		wantErr bool
	}{
		{`42`, 42, false},
		{`"42"`, 42, false},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, true},
		{`true`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v Int64
			err := json.Unmarshal([]byte(tt.in), &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestCustomMetadata_Builders(t *testing.T) {
	data, err := json.Marshal([]CustomMetadata{
		StringMetadata("author", "ann"),
		NumericMetadata("year", 2024),
		StringListMetadata("tags", "a", "b"),
	})
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"key":"author","stringValue":"ann"},
		{"key":"year","numericValue":2024},
		{"key":"tags","stringListValue":{"values":["a","b"]}}
	]`, string(data))
}

func TestClampPageSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-5, 10},
		{0, 10},
		{1, 1},
		{10, 10},
		{20, 20},
		{21, 20},
		{1000, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampPageSize(tt.in), "ClampPageSize(%d)", tt.in)
	}
}

func TestChunkingConfig_WithDefaults(t *testing.T) {
	assert.Equal(t, DefaultChunkingConfig(), ChunkingConfig{}.WithDefaults())
	assert.Equal(t, ChunkingConfig{MaxTokensPerChunk: 500, MaxOverlapTokens: 20},
		ChunkingConfig{MaxTokensPerChunk: 500}.WithDefaults())
}

func TestOperation_Failed(t *testing.T) {
	assert.False(t, Operation{Done: false, Error: &OperationError{}}.Failed())
	assert.False(t, Operation{Done: true}.Failed())
	assert.True(t, Operation{Done: true, Error: &OperationError{Code: 3}}.Failed())
}

func TestFileContent(t *testing.T) {
	f := FileContent{Name: "Report.PDF", Data: []byte("abc")}
	assert.Equal(t, ".pdf", f.Ext())
	assert.Equal(t, int64(3), f.Size())
	assert.Equal(t, "", FileContent{Name: "README"}.Ext())
}
