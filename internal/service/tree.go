package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
	"dipstudio/internal/domain/services"
)

// treeService implements services.TreeService.
type treeService struct {
	nodeRepo    repositories.NodeRepository
	docRepo     repositories.FunctionDocumentRepository
	contentRepo repositories.DocumentContentRepository
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewTreeService creates a new tree service.
func NewTreeService(
	nodeRepo repositories.NodeRepository,
	docRepo repositories.FunctionDocumentRepository,
	contentRepo repositories.DocumentContentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.TreeService {
	return &treeService{
		nodeRepo:    nodeRepo,
		docRepo:     docRepo,
		contentRepo: contentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *treeService) CreateNode(ctx context.Context, req *services.CreateNodeRequest) (*models.ProjectNode, error) {
	var parent *models.ProjectNode
	if req.ParentID != nil {
		p, err := s.nodeRepo.GetByID(ctx, req.ProjectID, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent node: %w", err)
		}
		parent = p
	}

	var parentType *models.NodeType
	if parent != nil {
		parentType = &parent.NodeType
	}
	if err := models.ValidateParentType(req.NodeType, parentType); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	node := &models.ProjectNode{
		ProjectID:   req.ProjectID,
		ParentID:    req.ParentID,
		NodeType:    req.NodeType,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatorID:   req.CreatorID,
		CreatorName: req.CreatorName,
		EditorID:    req.CreatorID,
		EditorName:  req.CreatorName,
	}
	if err := node.Validate(); err != nil {
		return nil, err
	}

	maxSort, err := s.nodeRepo.GetMaxSort(ctx, req.ProjectID, req.ParentID)
	if err != nil {
		return nil, fmt.Errorf("get max sort: %w", err)
	}
	node.Sort = maxSort + 1

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.nodeRepo.Create(ctx, node); err != nil {
			return err
		}

		if node.NodeType != models.NodeTypeFunction {
			return nil
		}

		doc := &models.FunctionDocument{
			FunctionNodeID: node.ID,
			CreatorID:      req.CreatorID,
			CreatorName:    req.CreatorName,
			EditorID:       req.CreatorID,
			EditorName:     req.CreatorName,
		}
		if err := s.docRepo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create function document: %w", err)
		}
		if err := s.contentRepo.Set(ctx, doc.ID, []byte("{}")); err != nil {
			return fmt.Errorf("initialize document content: %w", err)
		}
		node.DocumentID = &doc.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("node created", "id", node.ID, "type", node.NodeType, "project_id", node.ProjectID)
	return node, nil
}

func (s *treeService) GetNode(ctx context.Context, projectID int64, id string) (*models.ProjectNode, error) {
	return s.nodeRepo.GetByID(ctx, projectID, id)
}

func (s *treeService) UpdateNode(ctx context.Context, projectID int64, id string, req *services.UpdateNodeRequest) (*models.ProjectNode, error) {
	node, err := s.nodeRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		node.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		node.Description = req.Description
	}
	if err := node.Validate(); err != nil {
		return nil, err
	}

	node.EditorID = req.EditorID
	node.EditorName = req.EditorName

	if err := s.nodeRepo.Update(ctx, node); err != nil {
		return nil, err
	}

	s.logger.Info("node updated", "id", node.ID)
	return node, nil
}

// MoveNode reparents a node: re-validates the type constraint against the
// new parent, rejects moving a node into its own subtree, resolves
// PredecessorID to a sort position, makes room among the new siblings by
// incrementing their sort values, writes the node's new parent/path/sort,
// and rewrites the path prefix of every descendant.
func (s *treeService) MoveNode(ctx context.Context, projectID int64, id string, req *services.MoveNodeRequest) (*models.ProjectNode, error) {
	node, err := s.nodeRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	var newParent *models.ProjectNode
	if req.NewParentID != nil {
		newParent, err = s.nodeRepo.GetByID(ctx, projectID, *req.NewParentID)
		if err != nil {
			return nil, fmt.Errorf("get new parent node: %w", err)
		}
		if strings.HasPrefix(newParent.Path, node.Path) {
			return nil, fmt.Errorf("%w: cannot move a node into its own subtree", domain.ErrValidation)
		}
	} else if node.NodeType != models.NodeTypeApplication {
		return nil, fmt.Errorf("%w: %s node must have a parent", domain.ErrValidation, node.NodeType)
	}

	var newParentType *models.NodeType
	if newParent != nil {
		newParentType = &newParent.NodeType
	}
	if err := models.ValidateParentType(node.NodeType, newParentType); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	newSort, err := s.resolveNewSort(ctx, projectID, req.NewParentID, req.PredecessorID)
	if err != nil {
		return nil, err
	}

	oldPath := node.Path
	var newPath string
	if newParent != nil {
		newPath = fmt.Sprintf("%s/node_%s", newParent.Path, node.ID)
	} else {
		newPath = fmt.Sprintf("/node_%s", node.ID)
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.nodeRepo.IncrementSortFrom(ctx, projectID, req.NewParentID, newSort); err != nil {
			return fmt.Errorf("make room among new siblings: %w", err)
		}

		node.ParentID = req.NewParentID
		node.Path = newPath
		node.Sort = newSort
		node.EditorID = req.EditorID
		node.EditorName = req.EditorName

		if err := s.nodeRepo.Move(ctx, node); err != nil {
			return err
		}

		if err := s.nodeRepo.RewritePathPrefix(ctx, projectID, oldPath, newPath); err != nil {
			return fmt.Errorf("rewrite descendant paths: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("node moved", "id", node.ID, "new_parent_id", req.NewParentID)
	return node, nil
}

// resolveNewSort turns a predecessor reference into a concrete sort value. A
// nil predecessorID means "first child" (sort 0); otherwise the predecessor
// must be a direct child of newParentID in the same project, and the result
// is the slot immediately after it.
func (s *treeService) resolveNewSort(ctx context.Context, projectID int64, newParentID, predecessorID *string) (int, error) {
	if predecessorID == nil {
		return 0, nil
	}

	predecessor, err := s.nodeRepo.GetByID(ctx, projectID, *predecessorID)
	if err != nil {
		return 0, fmt.Errorf("get predecessor node: %w", err)
	}

	sameParent := (predecessor.ParentID == nil && newParentID == nil) ||
		(predecessor.ParentID != nil && newParentID != nil && *predecessor.ParentID == *newParentID)
	if !sameParent {
		return 0, fmt.Errorf("%w: predecessor is not a direct child of the new parent", domain.ErrValidation)
	}

	return predecessor.Sort + 1, nil
}

// DeleteNode rejects deleting a node with children. If the node is a
// function node, its document content and metadata are removed first.
func (s *treeService) DeleteNode(ctx context.Context, projectID int64, id string) error {
	node, err := s.nodeRepo.GetByID(ctx, projectID, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.nodeRepo.HasChildren(ctx, projectID, id)
	if err != nil {
		return fmt.Errorf("check has children: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: node has children, delete or move them first", domain.ErrValidation)
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if node.NodeType == models.NodeTypeFunction && node.DocumentID != nil {
			if err := s.contentRepo.Delete(ctx, *node.DocumentID); err != nil {
				return fmt.Errorf("delete document content: %w", err)
			}
			if err := s.docRepo.Delete(ctx, node.ID); err != nil {
				return fmt.Errorf("delete function document: %w", err)
			}
		}
		return s.nodeRepo.Delete(ctx, projectID, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("node deleted", "id", id)
	return nil
}

// Tree builds the nested node tree for a project from its flat row set,
// linking each node to its parent in a single pass after an initial pass
// allocates every node's tree wrapper.
func (s *treeService) Tree(ctx context.Context, projectID int64) ([]*models.TreeNode, error) {
	allNodes, err := s.nodeRepo.GetDescendants(ctx, projectID, "")
	if err != nil {
		return nil, fmt.Errorf("list project nodes: %w", err)
	}

	nodeMap := make(map[string]*models.TreeNode, len(allNodes))
	for i := range allNodes {
		n := allNodes[i]
		nodeMap[n.ID] = &models.TreeNode{Node: &n, Children: []*models.TreeNode{}}
	}

	var roots []*models.TreeNode
	for _, n := range allNodes {
		node := nodeMap[n.ID]
		if n.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodeMap[*n.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	// Path order doesn't imply sibling order (sibling path segments are
	// keyed by node ID, not sort), so children are explicitly sorted here.
	for _, node := range nodeMap {
		sortTreeNodes(node.Children)
	}
	sortTreeNodes(roots)

	return roots, nil
}

func sortTreeNodes(nodes []*models.TreeNode) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Node.Sort < nodes[j].Node.Sort
	})
}
