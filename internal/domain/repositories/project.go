package repositories

import (
	"context"

	"dipstudio/internal/domain/models"
)

// ProjectRepository defines data access operations for projects.
type ProjectRepository interface {
	// Create creates a new project and returns it with generated ID and timestamps.
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID.
	GetByID(ctx context.Context, id int64) (*models.Project, error)

	// List retrieves all projects, ordered by edited_at DESC.
	List(ctx context.Context) ([]models.Project, error)

	// Update updates a project's name, description, and edited_at timestamp.
	Update(ctx context.Context, project *models.Project) error

	// Delete removes a project by ID. Callers are responsible for cascading
	// the delete to the project's nodes, dictionary, and documents within
	// the same transaction.
	Delete(ctx context.Context, id int64) error
}
