// Package dbx provides the minimal database/sql surface shared by repositories.
package dbx

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// DBTX is the subset of database/sql used by the repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// ValidUUID reports whether id can be bound to a uuid column. Repositories
// treat ids that fail this check as missing rows.
func ValidUUID(id string) bool {
	return uuid.Validate(id) == nil
}
