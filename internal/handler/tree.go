package handler

import (
	"log/slog"
	"net/http"

	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/services"
	"dipstudio/internal/httputil"
	"dipstudio/internal/reqcontext"
)

// TreeHandler handles node-tree HTTP requests.
type TreeHandler struct {
	tree   services.TreeService
	logger *slog.Logger
}

// NewTreeHandler creates a new tree handler.
func NewTreeHandler(tree services.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{tree: tree, logger: logger}
}

type createNodeDTO struct {
	ParentID    *string         `json:"parent_id"`
	NodeType    models.NodeType `json:"node_type"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
}

// CreateNode handles POST /api/projects/{projectId}/nodes.
func (h *TreeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}

	var dto createNodeDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller, _ := reqcontext.CallerFromContext(r.Context())
	node, err := h.tree.CreateNode(r.Context(), &services.CreateNodeRequest{
		ProjectID:   projectID,
		ParentID:    dto.ParentID,
		NodeType:    dto.NodeType,
		Name:        dto.Name,
		Description: dto.Description,
		CreatorID:   caller.UserID,
		CreatorName: caller.UserName,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, node)
}

// GetNode handles GET /api/projects/{projectId}/nodes/{id}.
func (h *TreeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "node id")
	if !ok {
		return
	}

	node, err := h.tree.GetNode(r.Context(), projectID, id)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, node)
}

type updateNodeDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UpdateNode handles PATCH /api/projects/{projectId}/nodes/{id}.
func (h *TreeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "node id")
	if !ok {
		return
	}

	var dto updateNodeDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller, _ := reqcontext.CallerFromContext(r.Context())
	node, err := h.tree.UpdateNode(r.Context(), projectID, id, &services.UpdateNodeRequest{
		Name:        dto.Name,
		Description: dto.Description,
		EditorID:    caller.UserID,
		EditorName:  caller.UserName,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, node)
}

type moveNodeDTO struct {
	NewParentID   *string `json:"new_parent_id"`
	PredecessorID *string `json:"predecessor_id"`
}

// MoveNode handles POST /api/projects/{projectId}/nodes/{id}/move.
func (h *TreeHandler) MoveNode(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "node id")
	if !ok {
		return
	}

	var dto moveNodeDTO
	if err := httputil.ParseJSON(w, r, &dto); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller, _ := reqcontext.CallerFromContext(r.Context())
	node, err := h.tree.MoveNode(r.Context(), projectID, id, &services.MoveNodeRequest{
		NewParentID:   dto.NewParentID,
		PredecessorID: dto.PredecessorID,
		EditorID:      caller.UserID,
		EditorName:    caller.UserName,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, node)
}

// DeleteNode handles DELETE /api/projects/{projectId}/nodes/{id}.
func (h *TreeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}
	id, ok := PathParam(w, r, "id", "node id")
	if !ok {
		return
	}

	if err := h.tree.DeleteNode(r.Context(), projectID, id); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTree handles GET /api/projects/{projectId}/tree.
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathInt64(w, r, "projectId", "project id")
	if !ok {
		return
	}

	tree, err := h.tree.Tree(r.Context(), projectID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tree)
}
