package store

import (
	"context"

	"github.com/xraph/prospect/business"
)

// Store is the aggregate persistence interface.
type Store interface {
	business.Store

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close releases resources owned by the store.
	Close() error
}
