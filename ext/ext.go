package ext

import (
	"context"
	"time"

	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/workflow"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// BusinessCreated is called after a business is persisted in the New stage.
type BusinessCreated interface {
	OnBusinessCreated(ctx context.Context, b *business.Business) error
}

// BusinessProgressed is called after a transition is persisted.
type BusinessProgressed interface {
	OnBusinessProgressed(ctx context.Context, b *business.Business, tr *workflow.Transition, elapsed time.Duration) error
}

// ProgressRejected is called when a progress request fails, whether by
// validation, a terminal stage, a missing record, or a store error.
type ProgressRejected interface {
	OnProgressRejected(ctx context.Context, fein string, err error) error
}

// DealClosed is called after a business reaches Won or Lost.
type DealClosed interface {
	OnDealClosed(ctx context.Context, b *business.Business) error
}

// Shutdown is called when the engine is shutting down.
type Shutdown interface {
	OnShutdown(ctx context.Context) error
}
