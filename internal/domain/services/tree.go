package services

import (
	"context"

	"dipstudio/internal/domain/models"
)

// CreateNodeRequest represents a request to create a node under (optionally)
// a parent node. ParentID is nil when creating a root application node.
type CreateNodeRequest struct {
	ProjectID   int64
	ParentID    *string
	NodeType    models.NodeType
	Name        string
	Description *string
	CreatorID   string
	CreatorName string
}

// UpdateNodeRequest represents a request to rename or re-describe a node.
// NodeType and ParentID are immutable outside of Move.
type UpdateNodeRequest struct {
	Name        *string
	Description *string
	EditorID    string
	EditorName  string
}

// MoveNodeRequest represents a request to reparent a node and/or change its
// position among its new siblings. Position is expressed relative to a
// sibling rather than as a raw sort integer: PredecessorID nil means "make
// this the first child"; otherwise the node is placed immediately after the
// named predecessor, which must already be a direct child of NewParentID in
// the same project.
type MoveNodeRequest struct {
	NewParentID   *string
	PredecessorID *string
	EditorID      string
	EditorName    string
}

// TreeService defines business logic for building and mutating a project's
// node tree (application -> page -> function).
type TreeService interface {
	// CreateNode validates the requested node type against its parent,
	// assigns the next sibling sort position, computes its materialised
	// path, and persists it. A function node additionally gets an empty
	// FunctionDocument created alongside it.
	CreateNode(ctx context.Context, req *CreateNodeRequest) (*models.ProjectNode, error)

	GetNode(ctx context.Context, projectID int64, id string) (*models.ProjectNode, error)

	UpdateNode(ctx context.Context, projectID int64, id string, req *UpdateNodeRequest) (*models.ProjectNode, error)

	// MoveNode reparents a node, re-validating the type constraint against
	// the new parent, resolves PredecessorID to a sort position, rewrites
	// the path prefix of every descendant, and makes room among the new
	// siblings by incrementing their sort values.
	MoveNode(ctx context.Context, projectID int64, id string, req *MoveNodeRequest) (*models.ProjectNode, error)

	// DeleteNode removes a single node. Rejected if the node has any
	// children — callers must delete or move them first. If the node is a
	// function node, its document content and metadata are deleted first.
	DeleteNode(ctx context.Context, projectID int64, id string) error

	// Tree builds the full nested node tree for a project, rooted at its
	// application nodes.
	Tree(ctx context.Context, projectID int64) ([]*models.TreeNode, error)
}
