package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
	"github.com/custodia-labs/filesearch/internal/core/ports/driving"
	"github.com/custodia-labs/filesearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// modelPrefix is the collection prefix of model resource names.
const modelPrefix = "models/"

// maxModelPages bounds how many pages ListModels follows.
const maxModelPages = 10

// SearchService answers grounded questions and lists models.
type SearchService struct {
	upstream   driven.Upstream
	normaliser driven.ResponseNormaliser
}

// NewSearchService creates a new search service.
func NewSearchService(upstream driven.Upstream, normaliser driven.ResponseNormaliser) *SearchService {
	return &SearchService{
		upstream:   upstream,
		normaliser: normaliser,
	}
}

// fileSearchTool is the generateContent tool that grounds answers in stores.
// The upstream expects snake_case field names for this tool.
type fileSearchTool struct {
	FileSearch struct {
		StoreNames     []string `json:"file_search_store_names"`
		MetadataFilter string   `json:"metadata_filter,omitempty"`
	} `json:"file_search"`
}

type generateRequest struct {
	Contents []content       `json:"contents"`
	Tools    []fileSearchTool `json:"tools"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Search asks a question grounded in the given stores.
func (s *SearchService) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchResult, error) {
	query.Query = strings.TrimSpace(query.Query)
	if query.Query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if len(query.StoreIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one store ID is required", domain.ErrInvalidInput)
	}
	for _, id := range query.StoreIDs {
		if err := validateID("store", id); err != nil {
			return nil, err
		}
	}
	model := strings.TrimPrefix(query.ModelOrDefault(), modelPrefix)
	if err := validateID("model", model); err != nil {
		return nil, err
	}

	var tool fileSearchTool
	tool.FileSearch.StoreNames = query.StoreNames()
	tool.FileSearch.MetadataFilter = strings.TrimSpace(query.MetadataFilter)

	raw, err := s.upstream.Do(ctx, driven.Request{
		Method: http.MethodPost,
		Path:   apiVersion + modelPrefix + model + ":generateContent",
		Body: generateRequest{
			Contents: []content{{Parts: []part{{Text: query.Query}}}},
			Tools:    []fileSearchTool{tool},
		},
		Extended: true,
	})
	if err != nil {
		return nil, fmt.Errorf("search: %w", mapError(err))
	}

	result, err := s.normaliser.Normalise(raw)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Info("search completed",
		"model", model,
		"stores", len(query.StoreIDs),
		"sources", len(result.Sources),
	)
	return result, nil
}

// upstreamModel is a model resource as listed upstream.
type upstreamModel struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	Description                string   `json:"description"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}

type modelList struct {
	Models        []upstreamModel `json:"models"`
	NextPageToken string          `json:"nextPageToken"`
}

// ListModels returns the models that support content generation,
// following pagination.
func (s *SearchService) ListModels(ctx context.Context) ([]domain.Model, error) {
	models := []domain.Model{}
	token := ""
	for page := 0; page < maxModelPages; page++ {
		query := url.Values{}
		if token != "" {
			query.Set("pageToken", token)
		}

		list, err := call[modelList](ctx, s.upstream, driven.Request{
			Method:     http.MethodGet,
			Path:       apiVersion + "models",
			Query:      query,
			KeyInQuery: true,
		})
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}

		for _, m := range list.Models {
			model := domain.Model{
				Name:             strings.TrimPrefix(m.Name, modelPrefix),
				DisplayName:      m.DisplayName,
				Description:      m.Description,
				SupportedMethods: m.SupportedGenerationMethods,
			}
			if model.SupportsGeneration() {
				models = append(models, model)
			}
		}

		token = list.NextPageToken
		if token == "" {
			break
		}
	}

	logger.Debug("models listed", "count", len(models))
	return models, nil
}
