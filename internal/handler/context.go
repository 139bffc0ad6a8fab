package handler

import (
	"log/slog"
	"net/http"

	"dipstudio/internal/domain/services"
	"dipstudio/internal/httputil"
)

// ContextHandler serves the context bundles an external AI coding agent
// reads: an application (or arbitrary node)'s ancestor chain and subtree,
// each enriched with document content.
type ContextHandler struct {
	context services.ContextAssemblyService
	logger  *slog.Logger
}

// NewContextHandler creates a new context-assembly handler.
func NewContextHandler(context services.ContextAssemblyService, logger *slog.Logger) *ContextHandler {
	return &ContextHandler{context: context, logger: logger}
}

// GetApplicationDetail handles
// GET /api/projects/{projectId}/applications/{id}/context.
func (h *ContextHandler) GetApplicationDetail(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "application node id")
	if !ok {
		return
	}

	detail, err := h.context.GetApplicationDetail(r.Context(), projectID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, detail)
}

// GetNodeDetail handles GET /api/projects/{projectId}/nodes/{id}/context.
func (h *ContextHandler) GetNodeDetail(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "node id")
	if !ok {
		return
	}

	detail, err := h.context.GetNodeDetail(r.Context(), projectID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, detail)
}
