// Package repomanager vends the metadata store repositories for a chosen
// backend and owns the backing connection.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/files"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Files() files.Repository
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	RunMigrations(ctx context.Context) error
	Close() error
}
