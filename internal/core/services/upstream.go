package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
)

// apiVersion prefixes every resource path.
const apiVersion = "/v1beta/"

// call performs req and decodes the JSON response into T.
func call[T any](ctx context.Context, up driven.Upstream, req driven.Request) (*T, error) {
	raw, err := up.Do(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &domain.UpstreamError{
			Kind:    domain.ErrInvalidResponseShape,
			Op:      req.Op(),
			Message: "decode response",
			Err:     err,
		}
	}
	return &v, nil
}

// mapError additionally marks upstream 404s as domain.ErrNotFound.
func mapError(err error) error {
	if domain.StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return err
}

// validateID rejects identifiers that cannot form a single name segment.
func validateID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s ID is required", domain.ErrInvalidInput, kind)
	}
	if strings.ContainsAny(id, "/?#") || id == "." || id == ".." {
		return fmt.Errorf("%w: invalid %s ID %q", domain.ErrInvalidInput, kind, id)
	}
	return nil
}

// pageQuery encodes a clamped page request.
func pageQuery(page domain.PageRequest) url.Values {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(domain.ClampPageSize(page.PageSize)))
	if page.PageToken != "" {
		q.Set("pageToken", page.PageToken)
	}
	return q
}

// forceQuery encodes the optional force flag of delete calls.
func forceQuery(force bool) url.Values {
	if !force {
		return nil
	}
	return url.Values{"force": {"true"}}
}
