package domain

// Page size bounds for list operations.
const (
	DefaultPageSize = 10
	MaxPageSize     = 20
)

// PageRequest selects one page of a list operation.
type PageRequest struct {
	// PageSize is the requested number of items. It is clamped, never rejected.
	PageSize int

	// PageToken continues a previous listing.
	PageToken string
}

// ClampPageSize bounds a requested page size to what the upstream allows.
// Zero or negative sizes fall back to DefaultPageSize.
func ClampPageSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
