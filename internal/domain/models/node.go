package models

import (
	"fmt"
	"time"

	"dipstudio/internal/config"
	"dipstudio/internal/domain"
)

// NodeType is the closed set of node kinds in a project tree.
type NodeType string

const (
	NodeTypeApplication NodeType = "application"
	NodeTypePage        NodeType = "page"
	NodeTypeFunction    NodeType = "function"
)

func (t NodeType) Valid() bool {
	switch t {
	case NodeTypeApplication, NodeTypePage, NodeTypeFunction:
		return true
	default:
		return false
	}
}

// AllowedParentTypes returns the node types that may legally be the parent
// of a node of type t. A nil entry in the returned slice means "no parent
// (root)" is allowed.
func AllowedParentTypes(t NodeType) []*NodeType {
	app, page := NodeTypeApplication, NodeTypePage
	switch t {
	case NodeTypeApplication:
		return []*NodeType{nil}
	case NodeTypePage:
		return []*NodeType{&app}
	case NodeTypeFunction:
		return []*NodeType{&page}
	default:
		return nil
	}
}

// CanHaveChildren reports whether a node of type t may have children.
// Function nodes are leaves.
func CanHaveChildren(t NodeType) bool {
	return t != NodeTypeFunction
}

// ValidateParentType checks that a node of type childType may be created (or
// moved) under a node of type parentType (nil parentType means root).
func ValidateParentType(childType NodeType, parentType *NodeType) error {
	allowed := AllowedParentTypes(childType)
	for _, p := range allowed {
		if p == nil && parentType == nil {
			return nil
		}
		if p != nil && parentType != nil && *p == *parentType {
			return nil
		}
	}
	if parentType == nil {
		return fmt.Errorf("%s node must have a parent", childType)
	}
	return fmt.Errorf("%s node cannot be created under a %s node", childType, *parentType)
}

// ProjectNode is the tree entity: a typed, ordered, materialised-path node
// belonging to a project.
type ProjectNode struct {
	ID          string
	ProjectID   int64
	ParentID    *string
	NodeType    NodeType
	Name        string
	Description *string
	Path        string
	Sort        int
	Status      int
	DocumentID  *int64
	CreatorID   string
	CreatorName string
	EditorID    string
	EditorName  string
	CreatedAt   time.Time
	EditedAt    time.Time
}

// Validate checks the node's own fields, independent of its parent.
func (n *ProjectNode) Validate() error {
	if n.Name == "" || len(n.Name) > config.MaxNodeNameLength {
		return fmt.Errorf("%w: node name must be 1-%d characters", domain.ErrValidation, config.MaxNodeNameLength)
	}
	if n.ProjectID == 0 {
		return fmt.Errorf("%w: project id is required", domain.ErrValidation)
	}
	if !n.NodeType.Valid() {
		return fmt.Errorf("%w: unknown node type %q", domain.ErrValidation, n.NodeType)
	}
	return nil
}

// BuildPath computes this node's materialised path given its parent's path
// (empty string for a root node).
func (n *ProjectNode) BuildPath(parentPath string) string {
	if parentPath != "" {
		n.Path = fmt.Sprintf("%s/node_%s", parentPath, n.ID)
	} else {
		n.Path = fmt.Sprintf("/node_%s", n.ID)
	}
	return n.Path
}

// DictionaryEntry is a project-scoped term/definition pair.
type DictionaryEntry struct {
	ID         int64
	ProjectID  int64
	Term       string
	Definition string
	CreatedAt  time.Time
}

func (d *DictionaryEntry) Validate() error {
	if d.Term == "" || len(d.Term) > 255 {
		return fmt.Errorf("%w: term must be 1-255 characters", domain.ErrValidation)
	}
	if d.Definition == "" {
		return fmt.Errorf("%w: definition is required", domain.ErrValidation)
	}
	if d.ProjectID == 0 {
		return fmt.Errorf("%w: project id is required", domain.ErrValidation)
	}
	return nil
}

// FunctionDocument is document metadata, 1:1 with a function node.
type FunctionDocument struct {
	ID             int64
	FunctionNodeID string
	CreatorID      string
	CreatorName    string
	EditorID       string
	EditorName     string
	CreatedAt      time.Time
	EditedAt       time.Time
}

// TreeNode is the in-memory, nested representation of a project's node tree,
// built by linking flat ProjectNode rows by parent/child.
type TreeNode struct {
	Node     *ProjectNode
	Children []*TreeNode
}
