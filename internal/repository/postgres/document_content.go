package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/repositories"
)

// PostgresDocumentContentRepository implements repositories.DocumentContentRepository.
//
// Content is stored as a single jsonb column, scanned and written as raw
// bytes rather than unmarshalled into a Go struct, since the document body
// is structurally opaque to the engine (any valid JSON object).
type PostgresDocumentContentRepository struct {
	pool   repositories.DBTX
	tables *TableNames
}

// NewDocumentContentRepository creates a new document content repository.
func NewDocumentContentRepository(config *RepositoryConfig) repositories.DocumentContentRepository {
	return &PostgresDocumentContentRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresDocumentContentRepository) Get(ctx context.Context, documentID int64) ([]byte, error) {
	query := fmt.Sprintf(`SELECT content FROM %s WHERE document_id = $1`, r.tables.DocumentContent)

	var content []byte
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, documentID).Scan(&content)
	if err != nil {
		if IsPgNoRowsError(err) {
			return []byte("{}"), nil
		}
		return nil, fmt.Errorf("get document content: %w", err)
	}

	return content, nil
}

func (r *PostgresDocumentContentRepository) Set(ctx context.Context, documentID int64, content []byte) error {
	if len(content) == 0 {
		content = []byte("{}")
	}
	if !json.Valid(content) {
		return fmt.Errorf("%w: content is not valid JSON", domain.ErrValidation)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, content, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (document_id) DO UPDATE SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at
	`, r.tables.DocumentContent)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, documentID, content); err != nil {
		return fmt.Errorf("set document content: %w", err)
	}

	return nil
}

// Patch applies an RFC 6902 JSON Patch document to the stored content. The
// result must itself be a JSON object; patches that produce an array or
// scalar are rejected.
func (r *PostgresDocumentContentRepository) Patch(ctx context.Context, documentID int64, patch []byte) ([]byte, error) {
	current, err := r.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	decoded, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: decode json patch: %v", domain.ErrValidation, err)
	}

	patched, err := decoded.Apply(current)
	if err != nil {
		return nil, fmt.Errorf("%w: apply json patch: %v", domain.ErrValidation, err)
	}

	var asObject map[string]interface{}
	if err := json.Unmarshal(patched, &asObject); err != nil {
		return nil, fmt.Errorf("%w: patch result must be a JSON object", domain.ErrValidation)
	}

	if err := r.Set(ctx, documentID, patched); err != nil {
		return nil, err
	}

	return patched, nil
}

func (r *PostgresDocumentContentRepository) Delete(ctx context.Context, documentID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.DocumentContent)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete document content: %w", err)
	}

	return nil
}
