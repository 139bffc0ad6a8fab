package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"dipstudio/internal/config"
	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
	"dipstudio/internal/domain/services"
)

// projectService implements services.ProjectService.
type projectService struct {
	projectRepo    repositories.ProjectRepository
	nodeRepo       repositories.NodeRepository
	dictionaryRepo repositories.DictionaryRepository
	docRepo        repositories.FunctionDocumentRepository
	contentRepo    repositories.DocumentContentRepository
	txManager      repositories.TransactionManager
	logger         *slog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	nodeRepo repositories.NodeRepository,
	dictionaryRepo repositories.DictionaryRepository,
	docRepo repositories.FunctionDocumentRepository,
	contentRepo repositories.DocumentContentRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo:    projectRepo,
		nodeRepo:       nodeRepo,
		dictionaryRepo: dictionaryRepo,
		docRepo:        docRepo,
		contentRepo:    contentRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	caller := callerFromContext(ctx)
	project := &models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatorID:   caller.UserID,
		CreatorName: caller.UserName,
		EditorID:    caller.UserID,
		EditorName:  caller.UserName,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created", "id", project.ID, "name", project.Name)
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

func (s *projectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *projectService) UpdateProject(ctx context.Context, id int64, req *services.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validation.Validate(name, validation.Required, validation.Length(1, config.MaxProjectNameLength)); err != nil {
			return nil, fmt.Errorf("%w: name: %v", domain.ErrValidation, err)
		}
		project.Name = name
	}
	if req.Description != nil {
		if len(*req.Description) > config.MaxProjectDescriptionLength {
			return nil, fmt.Errorf("%w: description exceeds %d characters", domain.ErrValidation, config.MaxProjectDescriptionLength)
		}
		project.Description = req.Description
	}

	caller := callerFromContext(ctx)
	project.EditorID = caller.UserID
	project.EditorName = caller.UserName

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "id", project.ID)
	return project, nil
}

// DeleteProject removes the project and cascades the delete, within a
// single transaction, to its nodes, documents, document content, and
// dictionary entries.
func (s *projectService) DeleteProject(ctx context.Context, id int64) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		// Every node's path starts with "/", so an empty-string prefix
		// matches the whole project.
		nodes, err := s.nodeRepo.GetDescendants(ctx, id, "")
		if err != nil {
			return fmt.Errorf("list project nodes: %w", err)
		}
		for _, node := range nodes {
			if node.NodeType != models.NodeTypeFunction || node.DocumentID == nil {
				continue
			}
			if err := s.contentRepo.Delete(ctx, *node.DocumentID); err != nil {
				return fmt.Errorf("delete document content: %w", err)
			}
			if err := s.docRepo.Delete(ctx, node.ID); err != nil {
				return fmt.Errorf("delete function document: %w", err)
			}
		}
		if err := s.nodeRepo.DeleteAllForProject(ctx, id); err != nil {
			return fmt.Errorf("delete project nodes: %w", err)
		}
		if err := s.dictionaryRepo.DeleteAllForProject(ctx, id); err != nil {
			return fmt.Errorf("delete project dictionary: %w", err)
		}
		if err := s.projectRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id)
	return nil
}

func (s *projectService) validateCreateRequest(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxProjectNameLength)),
		validation.Field(&req.Description, validation.Length(0, config.MaxProjectDescriptionLength)),
	)
}
