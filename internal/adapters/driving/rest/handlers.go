package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/filesearch/internal/core/domain"
)

// multipartMemory is the part of a multipart form kept in memory before
// spilling to temporary files.
const multipartMemory = 32 << 20

// routes registers every endpoint on mux.
func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/stores", s.handleCreateStore)
	mux.HandleFunc("GET /api/stores", s.handleListStores)
	mux.HandleFunc("GET /api/stores/{store_id}", s.handleGetStore)
	mux.HandleFunc("DELETE /api/stores/{store_id}", s.handleDeleteStore)

	mux.HandleFunc("GET /api/stores/{store_id}/documents", s.handleListDocuments)
	mux.HandleFunc("GET /api/stores/{store_id}/documents/{document_id}", s.handleGetDocument)
	mux.HandleFunc("DELETE /api/stores/{store_id}/documents/{document_id}", s.handleDeleteDocument)

	mux.HandleFunc("POST /api/stores/{store_id}/upload", s.handleUpload)
	mux.HandleFunc("POST /api/stores/{store_id}/import", s.handleImport)
	mux.HandleFunc("GET /api/operations/{name...}", s.handleGetOperation)

	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/models", s.handleListModels)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "healthy",
		"api_key_configured": s.cfg.APIKeyConfigured,
	})
}

type createStoreRequest struct {
	DisplayName string `json:"displayName"`
}

func (s *Server) handleCreateStore(w http.ResponseWriter, r *http.Request) {
	var req createStoreRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeError(w, r, err)
		return
	}
	store, err := s.ports.Stores.Create(r.Context(), req.DisplayName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, store)
}

func (s *Server) handleListStores(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := s.ports.Stores.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetStore(w http.ResponseWriter, r *http.Request) {
	store, err := s.ports.Stores.Get(r.Context(), r.PathValue("store_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, store)
}

func (s *Server) handleDeleteStore(w http.ResponseWriter, r *http.Request) {
	force, err := boolQuery(r, "force")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.ports.Stores.Delete(r.Context(), r.PathValue("store_id"), force); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	list, err := s.ports.Documents.List(r.Context(), r.PathValue("store_id"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.ports.Documents.Get(r.Context(), r.PathValue("store_id"), r.PathValue("document_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	force, err := boolQuery(r, "force")
	if err != nil {
		writeError(w, r, err)
		return
	}
	err = s.ports.Documents.Delete(r.Context(), r.PathValue("store_id"), r.PathValue("document_id"), force)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrFileTooLarge, s.cfg.MaxUploadSize))
			return
		}
		writeError(w, r, fmt.Errorf("%w: invalid multipart form: %v", domain.ErrInvalidInput, err))
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: file is required", domain.ErrInvalidInput))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("reading upload: %w", err))
		return
	}

	chunking, err := chunkingForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metadata, err := metadataForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	op, err := s.ports.Media.Upload(r.Context(), domain.UploadRequest{
		StoreID: r.PathValue("store_id"),
		File: domain.FileContent{
			Name:     header.Filename,
			Data:     data,
			MIMEType: r.FormValue("mime_type"),
		},
		DisplayName:    r.FormValue("display_name"),
		CustomMetadata: metadata,
		Chunking:       chunking,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, op)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	chunking, err := chunkingForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	metadata, err := metadataForm(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	op, err := s.ports.Media.Import(r.Context(), domain.ImportRequest{
		StoreID:        r.PathValue("store_id"),
		FileName:       r.FormValue("file_name"),
		CustomMetadata: metadata,
		Chunking:       chunking,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, op)
}

func (s *Server) handleGetOperation(w http.ResponseWriter, r *http.Request) {
	op, err := s.ports.Media.GetOperation(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, op)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query domain.SearchQuery
	if err := decodeJSON(w, r, &query, false); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := s.ports.Search.Search(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	models, err := s.ports.Search.ListModels(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, models)
}
