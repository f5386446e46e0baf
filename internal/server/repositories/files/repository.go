// Package files holds the metadata store repository for file nodes.
package files

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

// Repository persists file nodes. Lookups return common.ErrorNotFound when no
// matching node exists, including when the id has the wrong shape for the
// backend.
type Repository interface {
	Create(ctx context.Context, node *models.FileNode) (*models.FileNode, error)
	GetByID(ctx context.Context, id string) (*models.FileNode, error)
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.FileNode, error)
	// ListByParent returns the owner's children of parentID in insertion order.
	ListByParent(ctx context.Context, userID, parentID string, limit, offset int) ([]*models.FileNode, error)
	SetPublic(ctx context.Context, id string, isPublic bool) error
	Count(ctx context.Context) (int64, error)
}
