package domain

import "time"

// DocumentState is the ingestion lifecycle state of a document.
type DocumentState string

// Document lifecycle states reported by the upstream.
const (
	DocumentStateUnspecified DocumentState = "STATE_UNSPECIFIED"
	DocumentStatePending     DocumentState = "STATE_PENDING"
	DocumentStateActive      DocumentState = "STATE_ACTIVE"
	DocumentStateFailed      DocumentState = "STATE_FAILED"
)

// IsTerminal returns true once ingestion has finished, successfully or not.
func (s DocumentState) IsTerminal() bool {
	return s == DocumentStateActive || s == DocumentStateFailed
}

// String returns the string representation.
func (s DocumentState) String() string {
	return string(s)
}

// Document is one ingested file's indexed representation inside a store.
type Document struct {
	// Name is the resource name (fileSearchStores/{id}/documents/{id}).
	Name string `json:"name"`

	// DisplayName is the optional human-readable name.
	DisplayName string `json:"displayName,omitempty"`

	// CustomMetadata holds user-provided key/value pairs.
	CustomMetadata []CustomMetadata `json:"customMetadata,omitempty"`

	// CreateTime is when the document was created upstream.
	CreateTime time.Time `json:"createTime"`

	// UpdateTime is when the document was last modified upstream.
	UpdateTime time.Time `json:"updateTime"`

	// State is the ingestion state.
	State DocumentState `json:"state"`

	// SizeBytes is the size of the ingested file.
	SizeBytes Int64 `json:"sizeBytes"`

	// MIMEType is the content type of the source file.
	MIMEType string `json:"mimeType,omitempty"`
}

// ID returns the trailing identifier of the document name.
func (d Document) ID() string {
	return TrailingID(d.Name)
}

// DocumentList is one page of documents in a store.
type DocumentList struct {
	Documents     []Document `json:"documents"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

// CustomMetadata is a single key/value pair attached to a document.
// Exactly one of the value fields is expected to be set.
type CustomMetadata struct {
	Key             string      `json:"key"`
	StringValue     *string     `json:"stringValue,omitempty"`
	StringListValue *StringList `json:"stringListValue,omitempty"`
	NumericValue    *float64    `json:"numericValue,omitempty"`
}

// StringList wraps a list of strings the way the upstream encodes it.
type StringList struct {
	Values []string `json:"values"`
}

// StringMetadata builds a string-valued metadata entry.
func StringMetadata(key, value string) CustomMetadata {
	return CustomMetadata{Key: key, StringValue: &value}
}

// NumericMetadata builds a numeric metadata entry.
func NumericMetadata(key string, value float64) CustomMetadata {
	return CustomMetadata{Key: key, NumericValue: &value}
}

// StringListMetadata builds a string-list metadata entry.
func StringListMetadata(key string, values ...string) CustomMetadata {
	return CustomMetadata{Key: key, StringListValue: &StringList{Values: values}}
}

// MaxCustomMetadata is the most metadata entries a document may carry.
const MaxCustomMetadata = 20
