// Package users holds the metadata store repository for user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/models"
)

type Repository interface {
	// Create stores a new user and fills in its ID. Returns
	// common.ErrAlreadyExists when the backend rejects a duplicate email.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}
