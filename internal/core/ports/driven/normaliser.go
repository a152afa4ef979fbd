package driven

import "github.com/custodia-labs/filesearch/internal/core/domain"

// ResponseNormaliser converts a raw generateContent response into a SearchResult.
// Implementations must be pure: the same input always yields the same output.
type ResponseNormaliser interface {
	Normalise(raw []byte) (*domain.SearchResult, error)
}
