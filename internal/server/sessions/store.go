// Package sessions provides the key-value stores that hold login sessions.
//
// Every store keeps a value under a key for a bounded time. Get never extends
// the remaining lifetime of a key, and a missing or expired key reports
// common.ErrorNotFound.
package sessions

import (
	"context"
	"time"
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
	Close() error
}
