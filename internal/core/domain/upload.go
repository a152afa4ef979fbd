package domain

import (
	"path/filepath"
	"strings"
)

// FileContent is a file handed to the core by a collaborator.
type FileContent struct {
	// Name is the original file name, used for extension checks and MIME detection.
	Name string

	// Data is the complete file content.
	Data []byte

	// MIMEType is the declared content type. Detected from Name when empty.
	MIMEType string
}

// Ext returns the lower-cased extension of the file name, including the dot.
func (f FileContent) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Size returns the content length in bytes.
func (f FileContent) Size() int64 {
	return int64(len(f.Data))
}

// UploadedFile is the upstream file resource produced by a raw upload.
type UploadedFile struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
	SizeBytes   Int64  `json:"sizeBytes,omitempty"`
	URI         string `json:"uri,omitempty"`
	State       string `json:"state,omitempty"`
}

// UploadRequest uploads a file and imports it into a store.
type UploadRequest struct {
	// StoreID identifies the destination store.
	StoreID string

	// File is the content to upload.
	File FileContent

	// DisplayName defaults to the file name.
	DisplayName string

	// CustomMetadata is attached to the imported document.
	CustomMetadata []CustomMetadata

	// Chunking is accepted but currently has no upstream effect.
	Chunking ChunkingConfig
}

// ImportRequest imports an already-uploaded file into a store.
type ImportRequest struct {
	// StoreID identifies the destination store.
	StoreID string

	// FileName is the upstream file resource name (files/{id}).
	FileName string

	// CustomMetadata is attached to the imported document.
	CustomMetadata []CustomMetadata

	// Chunking is accepted but currently has no upstream effect.
	Chunking ChunkingConfig
}
