package repositories

import (
	"context"

	"dipstudio/internal/domain/models"
)

// DictionaryRepository defines data access operations for a project's
// term/definition dictionary.
type DictionaryRepository interface {
	Create(ctx context.Context, entry *models.DictionaryEntry) error

	GetByID(ctx context.Context, projectID, id int64) (*models.DictionaryEntry, error)

	// List retrieves every entry for a project, ordered by term.
	List(ctx context.Context, projectID int64) ([]models.DictionaryEntry, error)

	Update(ctx context.Context, entry *models.DictionaryEntry) error

	Delete(ctx context.Context, projectID, id int64) error

	DeleteAllForProject(ctx context.Context, projectID int64) error
}
