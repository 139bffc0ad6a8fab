package services

import (
	"context"

	"dipstudio/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project.
type CreateProjectRequest struct {
	Name        string
	Description *string
}

// UpdateProjectRequest represents a request to update a project's
// name/description.
type UpdateProjectRequest struct {
	Name        *string
	Description *string
}

// ProjectService defines business logic operations for projects.
type ProjectService interface {
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	GetProject(ctx context.Context, id int64) (*models.Project, error)

	ListProjects(ctx context.Context) ([]models.Project, error)

	UpdateProject(ctx context.Context, id int64, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject removes a project and cascades the delete to every node,
	// dictionary entry, and document that belongs to it.
	DeleteProject(ctx context.Context, id int64) error
}
