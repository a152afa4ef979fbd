package domain

import (
	"strings"
	"time"
)

// StoreCollection is the upstream collection that holds file search stores.
const StoreCollection = "fileSearchStores"

// MaxDisplayNameLength is the longest display name the upstream accepts.
const MaxDisplayNameLength = 512

// StoreName formats the resource name of a store from its identifier.
func StoreName(storeID string) string {
	return StoreCollection + "/" + storeID
}

// DocumentName formats the resource name of a document inside a store.
func DocumentName(storeID, documentID string) string {
	return StoreName(storeID) + "/documents/" + documentID
}

// TrailingID returns the last segment of a hierarchical resource name.
// It is only used to re-display identifiers; names are never parsed otherwise.
func TrailingID(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Store is an upstream-managed collection of documents.
type Store struct {
	// Name is the resource name (fileSearchStores/{id}).
	Name string `json:"name"`

	// DisplayName is the optional human-readable name.
	DisplayName string `json:"displayName,omitempty"`

	// CreateTime is when the store was created upstream.
	CreateTime time.Time `json:"createTime"`

	// UpdateTime is when the store was last modified upstream.
	UpdateTime time.Time `json:"updateTime"`

	// ActiveDocumentsCount is the number of documents ready for retrieval.
	ActiveDocumentsCount Int64 `json:"activeDocumentsCount"`

	// PendingDocumentsCount is the number of documents still being processed.
	PendingDocumentsCount Int64 `json:"pendingDocumentsCount"`

	// FailedDocumentsCount is the number of documents that failed processing.
	FailedDocumentsCount Int64 `json:"failedDocumentsCount"`

	// SizeBytes is the total size of ingested content.
	SizeBytes Int64 `json:"sizeBytes"`
}

// ID returns the trailing identifier of the store name.
func (s Store) ID() string {
	return TrailingID(s.Name)
}

// StoreList is one page of stores.
type StoreList struct {
	Stores        []Store `json:"fileSearchStores"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}
