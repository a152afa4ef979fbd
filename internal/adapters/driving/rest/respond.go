package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/logger"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("writing response body", "error", err)
	}
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched
// when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF) && allowEmpty:
		return nil
	default:
		return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrInvalidInput, err)
	}
}

// pageFromQuery reads page_size and page_token. Sizes are clamped by the services.
func pageFromQuery(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()
	page := domain.PageRequest{PageToken: q.Get("page_token")}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("%w: page_size must be an integer", domain.ErrInvalidInput)
		}
		page.PageSize = size
	}
	return page, nil
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", domain.ErrInvalidInput, name)
	}
	return v, nil
}

// intForm parses an optional integer form field, returning def when absent.
func intForm(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, name)
	}
	return v, nil
}

// chunkingForm reads the chunking fields shared by upload and import.
func chunkingForm(r *http.Request) (domain.ChunkingConfig, error) {
	tokens, err := intForm(r, "max_tokens_per_chunk", domain.DefaultMaxTokensPerChunk)
	if err != nil {
		return domain.ChunkingConfig{}, err
	}
	overlap, err := intForm(r, "max_overlap_tokens", domain.DefaultMaxOverlapTokens)
	if err != nil {
		return domain.ChunkingConfig{}, err
	}
	return domain.ChunkingConfig{MaxTokensPerChunk: tokens, MaxOverlapTokens: overlap}, nil
}

// metadataForm decodes the optional custom_metadata JSON array.
func metadataForm(r *http.Request) ([]domain.CustomMetadata, error) {
	raw := strings.TrimSpace(r.FormValue("custom_metadata"))
	if raw == "" {
		return nil, nil
	}
	var md []domain.CustomMetadata
	if err := json.Unmarshal([]byte(raw), &md); err != nil {
		return nil, fmt.Errorf("%w: custom_metadata must be a JSON array: %v", domain.ErrInvalidInput, err)
	}
	return md, nil
}
