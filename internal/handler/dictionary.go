package handler

import (
	"log/slog"
	"net/http"

	"dipstudio/internal/domain/services"
	"dipstudio/internal/httputil"
)

// DictionaryHandler handles per-project dictionary HTTP requests.
type DictionaryHandler struct {
	dictionary services.DictionaryService
	logger     *slog.Logger
}

// NewDictionaryHandler creates a new dictionary handler.
func NewDictionaryHandler(dictionary services.DictionaryService, logger *slog.Logger) *DictionaryHandler {
	return &DictionaryHandler{dictionary: dictionary, logger: logger}
}

type createDictionaryEntryDTO struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// CreateEntry handles POST /api/projects/{projectId}/dictionary.
func (h *DictionaryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}

	var dto createDictionaryEntryDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.dictionary.CreateEntry(r.Context(), &services.CreateDictionaryEntryRequest{
		ProjectID:  projectID,
		Term:       dto.Term,
		Definition: dto.Definition,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, entry)
}

// ListEntries handles GET /api/projects/{projectId}/dictionary.
func (h *DictionaryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}

	entries, err := h.dictionary.ListEntries(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, entries)
}

type updateDictionaryEntryDTO struct {
	Term       *string `json:"term"`
	Definition *string `json:"definition"`
}

// UpdateEntry handles PATCH /api/projects/{projectId}/dictionary/{id}.
func (h *DictionaryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathInt64(w, r, "id", "entry id")
	if !ok {
		return
	}

	var dto updateDictionaryEntryDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.dictionary.UpdateEntry(r.Context(), projectID, id, &services.UpdateDictionaryEntryRequest{
		Term:       dto.Term,
		Definition: dto.Definition,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, entry)
}

// DeleteEntry handles DELETE /api/projects/{projectId}/dictionary/{id}.
func (h *DictionaryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathInt64(w, r, "id", "entry id")
	if !ok {
		return
	}

	if err := h.dictionary.DeleteEntry(r.Context(), projectID, id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
