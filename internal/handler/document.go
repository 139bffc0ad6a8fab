package handler

import (
	"log/slog"
	"net/http"

	"dipstudio/internal/domain/services"
	"dipstudio/internal/httputil"
	"dipstudio/internal/reqcontext"
)

// DocumentHandler handles function-document HTTP requests.
type DocumentHandler struct {
	documents services.DocumentService
	logger    *slog.Logger
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(documents services.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{documents: documents, logger: logger}
}

// GetContent handles GET /api/projects/{projectId}/nodes/{id}/document.
func (h *DocumentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "node id")
	if !ok {
		return
	}

	content, err := h.documents.GetContent(r.Context(), projectID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// SetContent handles PUT /api/projects/{projectId}/nodes/{id}/document.
func (h *DocumentHandler) SetContent(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "node id")
	if !ok {
		return
	}

	var raw map[string]interface{}
	if err := httputil.ParseJSON(w, r, &raw); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	body, err := marshalBody(raw)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller, _ := reqcontext.CallerFromContext(r.Context())
	content, err := h.documents.SetContent(r.Context(), projectID, id, body, caller.UserID, caller.UserName)
	if err != nil {
		handleError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// PatchContent handles PATCH /api/projects/{projectId}/nodes/{id}/document,
// applying an RFC 6902 JSON Patch body.
func (h *DocumentHandler) PatchContent(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "node id")
	if !ok {
		return
	}

	var patch []interface{}
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	body, err := marshalPatch(patch)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller, _ := reqcontext.CallerFromContext(r.Context())
	content, err := h.documents.PatchContent(r.Context(), projectID, id, body, caller.UserID, caller.UserName)
	if err != nil {
		handleError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}
