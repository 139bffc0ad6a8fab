package postgres

import (
	"context"
	"fmt"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
)

// PostgresFunctionDocumentRepository implements repositories.FunctionDocumentRepository.
type PostgresFunctionDocumentRepository struct {
	pool   repositories.DBTX
	tables *TableNames
}

// NewFunctionDocumentRepository creates a new function document repository.
func NewFunctionDocumentRepository(config *RepositoryConfig) repositories.FunctionDocumentRepository {
	return &PostgresFunctionDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresFunctionDocumentRepository) Create(ctx context.Context, doc *models.FunctionDocument) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (function_node_id, creator_id, creator_name, editor_id, editor_name, created_at, edited_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, edited_at
	`, r.tables.FunctionDocuments)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.FunctionNodeID,
		doc.CreatorID,
		doc.CreatorName,
		doc.EditorID,
		doc.EditorName,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.EditedAt)

	if err != nil {
		return fmt.Errorf("create function document: %w", err)
	}

	return nil
}

func (r *PostgresFunctionDocumentRepository) GetByFunctionNodeID(ctx context.Context, functionNodeID string) (*models.FunctionDocument, error) {
	query := fmt.Sprintf(`
		SELECT id, function_node_id, creator_id, creator_name, editor_id, editor_name, created_at, edited_at
		FROM %s
		WHERE function_node_id = $1
	`, r.tables.FunctionDocuments)

	var doc models.FunctionDocument
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, functionNodeID).Scan(
		&doc.ID, &doc.FunctionNodeID, &doc.CreatorID, &doc.CreatorName,
		&doc.EditorID, &doc.EditorName, &doc.CreatedAt, &doc.EditedAt,
	)

	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document for node %s: %w", functionNodeID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get function document: %w", err)
	}

	return &doc, nil
}

func (r *PostgresFunctionDocumentRepository) Touch(ctx context.Context, doc *models.FunctionDocument) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET editor_id = $1, editor_name = $2, edited_at = NOW()
		WHERE id = $3
		RETURNING edited_at
	`, r.tables.FunctionDocuments)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, doc.EditorID, doc.EditorName, doc.ID).Scan(&doc.EditedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("document %d: %w", doc.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("touch function document: %w", err)
	}

	return nil
}

func (r *PostgresFunctionDocumentRepository) Delete(ctx context.Context, functionNodeID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE function_node_id = $1`, r.tables.FunctionDocuments)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, functionNodeID); err != nil {
		return fmt.Errorf("delete function document: %w", err)
	}

	return nil
}
