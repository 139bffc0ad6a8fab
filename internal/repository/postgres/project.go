package postgres

import (
	"context"
	"fmt"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
)

// PostgresProjectRepository implements repositories.ProjectRepository.
type PostgresProjectRepository struct {
	pool   repositories.DBTX
	tables *TableNames
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, creator_id, creator_name, editor_id, editor_name, created_at, edited_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, edited_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.CreatorID,
		project.CreatorName,
		project.EditorID,
		project.EditorName,
	).Scan(&project.ID, &project.CreatedAt, &project.EditedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project '%s' already exists", project.Name),
				ResourceType: "project",
			}
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id int64) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, creator_id, creator_name, editor_id, editor_name, created_at, edited_at
		FROM %s
		WHERE id = $1
	`, r.tables.Projects)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.CreatorID,
		&project.CreatorName,
		&project.EditorID,
		&project.EditorName,
		&project.CreatedAt,
		&project.EditedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

func (r *PostgresProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, description, creator_id, creator_name, editor_id, editor_name, created_at, edited_at
		FROM %s
		ORDER BY edited_at DESC
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var project models.Project
		if err := rows.Scan(
			&project.ID,
			&project.Name,
			&project.Description,
			&project.CreatorID,
			&project.CreatorName,
			&project.EditorID,
			&project.EditorName,
			&project.CreatedAt,
			&project.EditedAt,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, editor_id = $3, editor_name = $4, edited_at = NOW()
		WHERE id = $5
		RETURNING edited_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.EditorID,
		project.EditorName,
		project.ID,
	).Scan(&project.EditedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("project %d: %w", project.ID, domain.ErrNotFound)
		}
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("project '%s' already exists", project.Name),
				ResourceType: "project",
			}
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

// Delete removes a project row. Cascading deletion of the project's nodes,
// dictionary entries, and documents is the caller's responsibility, run
// within the same transaction (see service/project.go).
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}

	return nil
}
