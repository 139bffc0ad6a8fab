package repositories

import (
	"context"

	"dipstudio/internal/domain/models"
)

// NodeRepository defines data access operations for project tree nodes.
//
// Nodes are stored with a materialised path (e.g. "/node_a/node_b") so that
// a node's full subtree can be read with a single prefix query, without a
// recursive CTE.
type NodeRepository interface {
	// Create inserts a new node. The caller must have already computed Sort;
	// Path is derived from the parent's path (or is a root path) by Create.
	Create(ctx context.Context, node *models.ProjectNode) error

	// GetByID retrieves a single node by ID, scoped to a project.
	GetByID(ctx context.Context, projectID int64, id string) (*models.ProjectNode, error)

	// GetChildren retrieves the direct children of a node (or root nodes, if
	// parentID is nil), ordered by Sort ascending.
	GetChildren(ctx context.Context, projectID int64, parentID *string) ([]models.ProjectNode, error)

	// GetDescendants retrieves every node whose path is prefixed by the
	// given node's path, not including the node itself, ordered by path.
	GetDescendants(ctx context.Context, projectID int64, path string) ([]models.ProjectNode, error)

	// GetSubtree retrieves a node and all of its descendants in a single
	// query, ordered by path.
	GetSubtree(ctx context.Context, projectID int64, path string) ([]models.ProjectNode, error)

	// GetAncestorChain walks parentID references up from the given node to
	// the root, returning ancestors ordered root-first (not including the
	// node itself).
	GetAncestorChain(ctx context.Context, projectID int64, id string) ([]models.ProjectNode, error)

	// GetMaxSort returns the highest Sort value among the children of
	// parentID (or root nodes, if parentID is nil). Returns 0 if there are
	// no such children, so the first child's sort becomes max+1 == 1.
	GetMaxSort(ctx context.Context, projectID int64, parentID *string) (int, error)

	// HasChildren reports whether a node has any direct children.
	HasChildren(ctx context.Context, projectID int64, id string) (bool, error)

	// IncrementSortFrom increments Sort by 1 for every sibling of parentID
	// whose Sort is >= fromSort, making room for an insertion.
	IncrementSortFrom(ctx context.Context, projectID int64, parentID *string, fromSort int) error

	// Update persists changes to a node's mutable fields (name, description,
	// editor, edited_at). ParentID, Path and NodeType are immutable once set
	// except via Move.
	Update(ctx context.Context, node *models.ProjectNode) error

	// Move reparents a node: updates ParentID, Path and Sort on the node
	// itself. Updating the paths of any descendants is the caller's
	// responsibility (see RewritePathPrefix).
	Move(ctx context.Context, node *models.ProjectNode) error

	// RewritePathPrefix replaces the oldPrefix prefix with newPrefix on the
	// path of every node under a project whose path starts with oldPrefix.
	// Used after a Move to keep descendant paths consistent.
	RewritePathPrefix(ctx context.Context, projectID int64, oldPrefix, newPrefix string) error

	// Delete removes a single node row. Callers must have verified the node
	// has no children (or be deleting an entire project's nodes via
	// DeleteAllForProject instead).
	Delete(ctx context.Context, projectID int64, id string) error

	// DeleteAllForProject removes every node belonging to a project.
	DeleteAllForProject(ctx context.Context, projectID int64) error
}
