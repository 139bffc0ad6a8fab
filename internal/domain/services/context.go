package services

import (
	"context"

	"dipstudio/internal/domain/models"
)

// NodeContext pairs a tree node with its enriched document content: the raw
// rich-text JSON (for function nodes) and its rendered plain-text
// projection, ready to hand to an external AI agent as part of a context
// bundle. Field names and casing follow the wire contract the AI agent's
// tool server consumes: entry = { node, document, document_text }.
type NodeContext struct {
	Node         models.ProjectNode     `json:"node"`
	Document     map[string]interface{} `json:"document"`
	DocumentText string                 `json:"document_text"`
}

// ApplicationDetail is the full context bundle for a single application
// node: its ancestor chain (root-first, empty for an application node
// itself since applications have no parent), and the application node plus
// every descendant, each enriched with document content. Application holds
// the node the bundle was assembled for (the node passed to GetNodeDetail,
// which need not be an application) and is not part of the
// documented wire shape, which is exactly { context, content_to_develop }.
type ApplicationDetail struct {
	Application models.ProjectNode `json:"-"`
	Ancestors   []NodeContext      `json:"context"`
	Nodes       []NodeContext      `json:"content_to_develop"`
}

// ContextAssemblyService builds the context bundle handed to an external AI
// coding agent: an application's full subtree, with every function node's
// document rendered to readable text alongside its raw JSON.
type ContextAssemblyService interface {
	// GetApplicationDetail assembles the context bundle for the application
	// node rooted at id.
	GetApplicationDetail(ctx context.Context, projectID int64, applicationNodeID string) (*ApplicationDetail, error)

	// GetNodeDetail assembles the context bundle for an arbitrary node: its
	// ancestor chain up to (and including) the root application, plus the
	// node itself and its descendants.
	GetNodeDetail(ctx context.Context, projectID int64, nodeID string) (*ApplicationDetail, error)
}
