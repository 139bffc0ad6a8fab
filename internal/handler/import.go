package handler

import (
	"io"
	"log/slog"
	"net/http"

	"dipstudio/internal/domain/services"
	"dipstudio/internal/httputil"
	"dipstudio/internal/reqcontext"
)

// ImportHandler handles bulk zip-archive import requests.
type ImportHandler struct {
	importer services.ImportService
	logger   *slog.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(importer services.ImportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{importer: importer, logger: logger}
}

// Import handles POST /api/projects/{projectId}/applications/{id}/import,
// with the request body being a zip archive and an optional ?mode=replace
// query parameter (defaults to merge).
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	applicationNodeID, ok := PathParam(w, r, "id", "application node id")
	if !ok {
		return
	}

	mode := services.ImportModeMerge
	if r.URL.Query().Get("mode") == string(services.ImportModeReplace) {
		mode = services.ImportModeReplace
	}

	bundle, err := io.ReadAll(io.LimitReader(r.Body, 100<<20))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	caller, _ := reqcontext.CallerFromContext(r.Context())
	result, err := h.importer.Import(r.Context(), projectID, applicationNodeID, bundle, mode, caller.UserID, caller.UserName)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, result)
}
