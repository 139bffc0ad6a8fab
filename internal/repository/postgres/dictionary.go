package postgres

import (
	"context"
	"fmt"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
)

// PostgresDictionaryRepository implements repositories.DictionaryRepository.
type PostgresDictionaryRepository struct {
	pool   repositories.DBTX
	tables *TableNames
}

// NewDictionaryRepository creates a new dictionary repository.
func NewDictionaryRepository(config *RepositoryConfig) repositories.DictionaryRepository {
	return &PostgresDictionaryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresDictionaryRepository) Create(ctx context.Context, entry *models.DictionaryEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, term, definition, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`, r.tables.Dictionary)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, entry.ProjectID, entry.Term, entry.Definition).
		Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("term '%s' already exists in this project", entry.Term),
				ResourceType: "dictionary_entry",
			}
		}
		return fmt.Errorf("create dictionary entry: %w", err)
	}

	return nil
}

func (r *PostgresDictionaryRepository) GetByID(ctx context.Context, projectID, id int64) (*models.DictionaryEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, term, definition, created_at
		FROM %s
		WHERE id = $1 AND project_id = $2
	`, r.tables.Dictionary)

	var entry models.DictionaryEntry
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id, projectID).Scan(
		&entry.ID, &entry.ProjectID, &entry.Term, &entry.Definition, &entry.CreatedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("dictionary entry %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get dictionary entry: %w", err)
	}

	return &entry, nil
}

func (r *PostgresDictionaryRepository) List(ctx context.Context, projectID int64) ([]models.DictionaryEntry, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, term, definition, created_at
		FROM %s
		WHERE project_id = $1
		ORDER BY term
	`, r.tables.Dictionary)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list dictionary entries: %w", err)
	}
	defer rows.Close()

	entries := []models.DictionaryEntry{}
	for rows.Next() {
		var entry models.DictionaryEntry
		if err := rows.Scan(&entry.ID, &entry.ProjectID, &entry.Term, &entry.Definition, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dictionary entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dictionary entries: %w", err)
	}

	return entries, nil
}

func (r *PostgresDictionaryRepository) Update(ctx context.Context, entry *models.DictionaryEntry) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET term = $1, definition = $2
		WHERE id = $3 AND project_id = $4
	`, r.tables.Dictionary)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, entry.Term, entry.Definition, entry.ID, entry.ProjectID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("term '%s' already exists in this project", entry.Term),
				ResourceType: "dictionary_entry",
			}
		}
		return fmt.Errorf("update dictionary entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("dictionary entry %d: %w", entry.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresDictionaryRepository) Delete(ctx context.Context, projectID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND project_id = $2`, r.tables.Dictionary)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, projectID)
	if err != nil {
		return fmt.Errorf("delete dictionary entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("dictionary entry %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresDictionaryRepository) DeleteAllForProject(ctx context.Context, projectID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.Dictionary)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete project dictionary entries: %w", err)
	}

	return nil
}
