package service

import (
	"context"
	"fmt"
	"log/slog"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
	"dipstudio/internal/domain/services"
)

// documentService implements services.DocumentService.
type documentService struct {
	nodeRepo    repositories.NodeRepository
	docRepo     repositories.FunctionDocumentRepository
	contentRepo repositories.DocumentContentRepository
	logger      *slog.Logger
}

// NewDocumentService creates a new document service.
func NewDocumentService(
	nodeRepo repositories.NodeRepository,
	docRepo repositories.FunctionDocumentRepository,
	contentRepo repositories.DocumentContentRepository,
	logger *slog.Logger,
) services.DocumentService {
	return &documentService{
		nodeRepo:    nodeRepo,
		docRepo:     docRepo,
		contentRepo: contentRepo,
		logger:      logger,
	}
}

func (s *documentService) GetContent(ctx context.Context, projectID int64, functionNodeID string) ([]byte, error) {
	doc, err := s.documentFor(ctx, projectID, functionNodeID)
	if err != nil {
		return nil, err
	}
	return s.contentRepo.Get(ctx, doc.ID)
}

func (s *documentService) SetContent(ctx context.Context, projectID int64, functionNodeID string, content []byte, editorID, editorName string) ([]byte, error) {
	doc, err := s.documentFor(ctx, projectID, functionNodeID)
	if err != nil {
		return nil, err
	}

	if err := s.contentRepo.Set(ctx, doc.ID, content); err != nil {
		return nil, err
	}

	doc.EditorID = editorID
	doc.EditorName = editorName
	if err := s.docRepo.Touch(ctx, doc); err != nil {
		return nil, fmt.Errorf("touch document metadata: %w", err)
	}

	s.logger.Info("document content set", "document_id", doc.ID, "node_id", functionNodeID)
	return s.contentRepo.Get(ctx, doc.ID)
}

func (s *documentService) PatchContent(ctx context.Context, projectID int64, functionNodeID string, patch []byte, editorID, editorName string) ([]byte, error) {
	doc, err := s.documentFor(ctx, projectID, functionNodeID)
	if err != nil {
		return nil, err
	}

	patched, err := s.contentRepo.Patch(ctx, doc.ID, patch)
	if err != nil {
		return nil, err
	}

	doc.EditorID = editorID
	doc.EditorName = editorName
	if err := s.docRepo.Touch(ctx, doc); err != nil {
		return nil, fmt.Errorf("touch document metadata: %w", err)
	}

	s.logger.Info("document content patched", "document_id", doc.ID, "node_id", functionNodeID)
	return patched, nil
}

func (s *documentService) documentFor(ctx context.Context, projectID int64, functionNodeID string) (*models.FunctionDocument, error) {
	node, err := s.nodeRepo.GetByID(ctx, projectID, functionNodeID)
	if err != nil {
		return nil, err
	}
	if node.NodeType != models.NodeTypeFunction {
		return nil, fmt.Errorf("%w: node %s is not a function node", domain.ErrValidation, functionNodeID)
	}

	doc, err := s.docRepo.GetByFunctionNodeID(ctx, functionNodeID)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
