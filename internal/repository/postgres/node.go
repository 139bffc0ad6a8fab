package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
	"dipstudio/internal/domain/repositories"
)

// PostgresNodeRepository implements repositories.NodeRepository.
type PostgresNodeRepository struct {
	pool   repositories.DBTX
	tables *TableNames
}

// NewNodeRepository creates a new node repository.
func NewNodeRepository(config *RepositoryConfig) repositories.NodeRepository {
	return &PostgresNodeRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const nodeColumns = `id, project_id, parent_id, node_type, name, description,
	path, sort, status, document_id, creator_id, creator_name, created_at,
	editor_id, editor_name, edited_at`

func scanNode(row rowScanner) (*models.ProjectNode, error) {
	var n models.ProjectNode
	var documentID *int64
	if err := row.Scan(
		&n.ID,
		&n.ProjectID,
		&n.ParentID,
		&n.NodeType,
		&n.Name,
		&n.Description,
		&n.Path,
		&n.Sort,
		&n.Status,
		&documentID,
		&n.CreatorID,
		&n.CreatorName,
		&n.CreatedAt,
		&n.EditorID,
		&n.EditorName,
		&n.EditedAt,
	); err != nil {
		return nil, err
	}
	n.DocumentID = documentID
	return &n, nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresNodeRepository) Create(ctx context.Context, node *models.ProjectNode) error {
	if node.ID == "" {
		node.ID = uuid.NewString()
	}
	if node.ParentID != nil {
		parent, err := r.GetByID(ctx, node.ProjectID, *node.ParentID)
		if err != nil {
			return fmt.Errorf("get parent node: %w", err)
		}
		node.BuildPath(parent.Path)
	} else {
		node.BuildPath("")
	}
	if node.EditorID == "" {
		node.EditorID = node.CreatorID
	}
	if node.EditorName == "" {
		node.EditorName = node.CreatorName
	}
	if node.Status == 0 {
		node.Status = 1
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, parent_id, node_type, name, description, path, sort,
			status, document_id, creator_id, creator_name, created_at, editor_id, editor_name, edited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), $13, $14, NOW())
		RETURNING created_at, edited_at
	`, r.tables.Nodes)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		node.ID,
		node.ProjectID,
		node.ParentID,
		node.NodeType,
		node.Name,
		node.Description,
		node.Path,
		node.Sort,
		node.Status,
		node.DocumentID,
		node.CreatorID,
		node.CreatorName,
		node.EditorID,
		node.EditorName,
	).Scan(&node.CreatedAt, &node.EditedAt)

	if err != nil {
		return fmt.Errorf("create node: %w", err)
	}

	return nil
}

func (r *PostgresNodeRepository) GetByID(ctx context.Context, projectID int64, id string) (*models.ProjectNode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 AND project_id = $2`, nodeColumns, r.tables.Nodes)

	executor := GetExecutor(ctx, r.pool)
	node, err := scanNode(executor.QueryRow(ctx, query, id, projectID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get node: %w", err)
	}

	return node, nil
}

func (r *PostgresNodeRepository) GetChildren(ctx context.Context, projectID int64, parentID *string) ([]models.ProjectNode, error) {
	var query string
	var args []interface{}
	if parentID != nil {
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = $1 AND parent_id = $2 ORDER BY sort`, nodeColumns, r.tables.Nodes)
		args = []interface{}{projectID, *parentID}
	} else {
		query = fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = $1 AND parent_id IS NULL ORDER BY sort`, nodeColumns, r.tables.Nodes)
		args = []interface{}{projectID}
	}
	return r.queryNodes(ctx, query, args...)
}

func (r *PostgresNodeRepository) GetDescendants(ctx context.Context, projectID int64, path string) ([]models.ProjectNode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = $1 AND path LIKE $2 ORDER BY path, sort`, nodeColumns, r.tables.Nodes)
	return r.queryNodes(ctx, query, projectID, path+"/%")
}

func (r *PostgresNodeRepository) GetSubtree(ctx context.Context, projectID int64, path string) ([]models.ProjectNode, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE project_id = $1 AND (path = $2 OR path LIKE $3) ORDER BY path, sort`, nodeColumns, r.tables.Nodes)
	return r.queryNodes(ctx, query, projectID, path, path+"/%")
}

func (r *PostgresNodeRepository) GetAncestorChain(ctx context.Context, projectID int64, id string) ([]models.ProjectNode, error) {
	node, err := r.GetByID(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	var ancestors []models.ProjectNode
	currentParentID := node.ParentID
	for currentParentID != nil {
		ancestor, err := r.GetByID(ctx, projectID, *currentParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				break
			}
			return nil, fmt.Errorf("get ancestor: %w", err)
		}
		ancestors = append(ancestors, *ancestor)
		currentParentID = ancestor.ParentID
	}

	// Reverse so the chain reads root-first.
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}

	return ancestors, nil
}

func (r *PostgresNodeRepository) GetMaxSort(ctx context.Context, projectID int64, parentID *string) (int, error) {
	var query string
	var args []interface{}
	if parentID != nil {
		query = fmt.Sprintf(`SELECT COALESCE(MAX(sort), 0) FROM %s WHERE parent_id = $1`, r.tables.Nodes)
		args = []interface{}{*parentID}
	} else {
		query = fmt.Sprintf(`SELECT COALESCE(MAX(sort), 0) FROM %s WHERE project_id = $1 AND parent_id IS NULL`, r.tables.Nodes)
		args = []interface{}{projectID}
	}

	var maxSort int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, args...).Scan(&maxSort); err != nil {
		return 0, fmt.Errorf("get max sort: %w", err)
	}

	return maxSort, nil
}

func (r *PostgresNodeRepository) HasChildren(ctx context.Context, projectID int64, id string) (bool, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE project_id = $1 AND parent_id = $2`, r.tables.Nodes)

	var count int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, projectID, id).Scan(&count); err != nil {
		return false, fmt.Errorf("check has children: %w", err)
	}

	return count > 0, nil
}

func (r *PostgresNodeRepository) IncrementSortFrom(ctx context.Context, projectID int64, parentID *string, fromSort int) error {
	var query string
	var args []interface{}
	if parentID != nil {
		query = fmt.Sprintf(`UPDATE %s SET sort = sort + 1 WHERE parent_id = $1 AND sort >= $2`, r.tables.Nodes)
		args = []interface{}{*parentID, fromSort}
	} else {
		query = fmt.Sprintf(`UPDATE %s SET sort = sort + 1 WHERE project_id = $1 AND parent_id IS NULL AND sort >= $2`, r.tables.Nodes)
		args = []interface{}{projectID, fromSort}
	}

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("increment sibling sort: %w", err)
	}

	return nil
}

func (r *PostgresNodeRepository) Update(ctx context.Context, node *models.ProjectNode) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, editor_id = $3, editor_name = $4, edited_at = NOW()
		WHERE id = $5 AND project_id = $6
		RETURNING edited_at
	`, r.tables.Nodes)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		node.Name,
		node.Description,
		node.EditorID,
		node.EditorName,
		node.ID,
		node.ProjectID,
	).Scan(&node.EditedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("node %s: %w", node.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update node: %w", err)
	}

	return nil
}

func (r *PostgresNodeRepository) Move(ctx context.Context, node *models.ProjectNode) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET parent_id = $1, path = $2, sort = $3, editor_id = $4, editor_name = $5, edited_at = NOW()
		WHERE id = $6 AND project_id = $7
		RETURNING edited_at
	`, r.tables.Nodes)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		node.ParentID,
		node.Path,
		node.Sort,
		node.EditorID,
		node.EditorName,
		node.ID,
		node.ProjectID,
	).Scan(&node.EditedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("node %s: %w", node.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("move node: %w", err)
	}

	return nil
}

func (r *PostgresNodeRepository) RewritePathPrefix(ctx context.Context, projectID int64, oldPrefix, newPrefix string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET path = $1 || substring(path from %d)
		WHERE project_id = $2 AND path LIKE $3
	`, r.tables.Nodes, len(oldPrefix)+1)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, newPrefix, projectID, oldPrefix+"/%"); err != nil {
		return fmt.Errorf("rewrite descendant paths: %w", err)
	}

	return nil
}

func (r *PostgresNodeRepository) Delete(ctx context.Context, projectID int64, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND project_id = $2`, r.tables.Nodes)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, projectID)
	if err != nil {
		return fmt.Errorf("delete node: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresNodeRepository) DeleteAllForProject(ctx context.Context, projectID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.Nodes)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete project nodes: %w", err)
	}

	return nil
}

func (r *PostgresNodeRepository) queryNodes(ctx context.Context, query string, args ...interface{}) ([]models.ProjectNode, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	nodes := []models.ProjectNode{}
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, *node)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}

	return nodes, nil
}
