package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/dbx"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// PostgresRepository implements file node storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id::text, user_id::text, name, type, is_public, parent_id, local_path, created_at`

// Create inserts node and fills in its ID and CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, node *models.FileNode) (*models.FileNode, error) {
	query := `
		INSERT INTO files (user_id, name, type, is_public, parent_id, local_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		node.UserID, node.Name, string(node.Type), node.IsPublic, node.ParentID, node.LocalPath).
		Scan(&node.ID, &node.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return node, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileNode, error) {
	if !dbx.ValidUUID(id) {
		return nil, common.ErrorNotFound
	}
	query := `SELECT ` + selectColumns + ` FROM files WHERE id = $1`
	return scanNode(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.FileNode, error) {
	if !dbx.ValidUUID(id) || !dbx.ValidUUID(userID) {
		return nil, common.ErrorNotFound
	}
	query := `SELECT ` + selectColumns + ` FROM files WHERE id = $1 AND user_id = $2`
	return scanNode(r.db.QueryRowContext(ctx, query, id, userID))
}

// ListByParent pages through the owner's children ordered by the insert sequence.
func (r *PostgresRepository) ListByParent(ctx context.Context, userID, parentID string, limit, offset int) ([]*models.FileNode, error) {
	if !dbx.ValidUUID(userID) {
		return []*models.FileNode{}, nil
	}

	query := `
		SELECT ` + selectColumns + `
		FROM files
		WHERE user_id = $1 AND parent_id = $2
		ORDER BY seq
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.QueryContext(ctx, query, userID, parentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.FileNode, 0)
	for rows.Next() {
		n := &models.FileNode{}
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Name, &typ, &n.IsPublic, &n.ParentID, &n.LocalPath, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		n.Type = models.FileType(typ)
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// SetPublic flips the visibility flag. Returns common.ErrorNotFound when no row
// matched.
func (r *PostgresRepository) SetPublic(ctx context.Context, id string, isPublic bool) error {
	if !dbx.ValidUUID(id) {
		return common.ErrorNotFound
	}
	res, err := r.db.ExecContext(ctx, `UPDATE files SET is_public = $2 WHERE id = $1`, id, isPublic)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM files`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func scanNode(row *sql.Row) (*models.FileNode, error) {
	n := &models.FileNode{}
	var typ string
	err := row.Scan(&n.ID, &n.UserID, &n.Name, &typ, &n.IsPublic, &n.ParentID, &n.LocalPath, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	n.Type = models.FileType(typ)
	return n, nil
}
