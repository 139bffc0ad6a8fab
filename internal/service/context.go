package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
	"dipstudio/internal/domain/services"
	"dipstudio/internal/service/render"
)

// contextAssemblyService implements services.ContextAssemblyService.
type contextAssemblyService struct {
	nodeRepo    repositories.NodeRepository
	contentRepo repositories.DocumentContentRepository
	logger      *slog.Logger
}

// NewContextAssemblyService creates a new context-assembly service.
func NewContextAssemblyService(
	nodeRepo repositories.NodeRepository,
	contentRepo repositories.DocumentContentRepository,
	logger *slog.Logger,
) services.ContextAssemblyService {
	return &contextAssemblyService{
		nodeRepo:    nodeRepo,
		contentRepo: contentRepo,
		logger:      logger,
	}
}

func (s *contextAssemblyService) GetApplicationDetail(ctx context.Context, projectID int64, applicationNodeID string) (*services.ApplicationDetail, error) {
	return s.detail(ctx, projectID, applicationNodeID)
}

func (s *contextAssemblyService) GetNodeDetail(ctx context.Context, projectID int64, nodeID string) (*services.ApplicationDetail, error) {
	return s.detail(ctx, projectID, nodeID)
}

// detail assembles the ancestor chain (root-first) and the node's own
// subtree, enriching every entry with its document content (if any) and the
// document's rendered readable-text projection.
func (s *contextAssemblyService) detail(ctx context.Context, projectID int64, nodeID string) (*services.ApplicationDetail, error) {
	node, err := s.nodeRepo.GetByID(ctx, projectID, nodeID)
	if err != nil {
		return nil, err
	}

	ancestorNodes, err := s.nodeRepo.GetAncestorChain(ctx, projectID, nodeID)
	if err != nil {
		return nil, fmt.Errorf("get ancestor chain: %w", err)
	}
	ancestors := make([]services.NodeContext, 0, len(ancestorNodes))
	for _, anc := range ancestorNodes {
		nc, err := s.enrich(ctx, anc)
		if err != nil {
			return nil, err
		}
		ancestors = append(ancestors, nc)
	}

	descendants, err := s.nodeRepo.GetDescendants(ctx, projectID, node.Path)
	if err != nil {
		return nil, fmt.Errorf("get descendants: %w", err)
	}

	subtree := append([]models.ProjectNode{*node}, descendants...)
	nodes := make([]services.NodeContext, 0, len(subtree))
	for _, n := range subtree {
		nc, err := s.enrich(ctx, n)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, nc)
	}

	s.logger.Info("application detail assembled", "node_id", nodeID, "ancestors", len(ancestors), "nodes", len(nodes))

	return &services.ApplicationDetail{
		Application: *node,
		Ancestors:   ancestors,
		Nodes:       nodes,
	}, nil
}

func (s *contextAssemblyService) enrich(ctx context.Context, node models.ProjectNode) (services.NodeContext, error) {
	nc := services.NodeContext{Node: node}
	if node.DocumentID == nil {
		return nc, nil
	}

	raw, err := s.contentRepo.Get(ctx, *node.DocumentID)
	if err != nil {
		return services.NodeContext{}, fmt.Errorf("get document content for node %s: %w", node.ID, err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return services.NodeContext{}, fmt.Errorf("decode document content for node %s: %w", node.ID, err)
	}
	nc.Document = doc

	// An empty document ({}) renders to no readable text, same as a
	// missing one — nothing has been written yet.
	if len(doc) > 0 {
		nc.DocumentText = render.RenderReadableText(raw)
	}
	return nc, nil
}
