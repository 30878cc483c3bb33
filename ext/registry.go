package ext

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/prospect/business"
	"github.com/xraph/prospect/workflow"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time.
type businessCreatedEntry struct {
	name string
	hook BusinessCreated
}

type businessProgressedEntry struct {
	name string
	hook BusinessProgressed
}

type progressRejectedEntry struct {
	name string
	hook ProgressRejected
}

type dealClosedEntry struct {
	name string
	hook DealClosed
}

type shutdownEntry struct {
	name string
	hook Shutdown
}

// Registry holds registered extensions and dispatches workflow events to
// them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
//
// Register is not safe to call concurrently with Emit*; register every
// extension before the engine starts serving.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	businessCreated    []businessCreatedEntry
	businessProgressed []businessProgressedEntry
	progressRejected   []progressRejectedEntry
	dealClosed         []dealClosedEntry
	shutdown           []shutdownEntry
}

// NewRegistry creates an extension registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(BusinessCreated); ok {
		r.businessCreated = append(r.businessCreated, businessCreatedEntry{name, h})
	}
	if h, ok := e.(BusinessProgressed); ok {
		r.businessProgressed = append(r.businessProgressed, businessProgressedEntry{name, h})
	}
	if h, ok := e.(ProgressRejected); ok {
		r.progressRejected = append(r.progressRejected, progressRejectedEntry{name, h})
	}
	if h, ok := e.(DealClosed); ok {
		r.dealClosed = append(r.dealClosed, dealClosedEntry{name, h})
	}
	if h, ok := e.(Shutdown); ok {
		r.shutdown = append(r.shutdown, shutdownEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []Extension { return r.extensions }

// EmitBusinessCreated notifies all extensions that implement BusinessCreated.
func (r *Registry) EmitBusinessCreated(ctx context.Context, b *business.Business) {
	for _, e := range r.businessCreated {
		if err := e.hook.OnBusinessCreated(ctx, b); err != nil {
			r.logHookError("OnBusinessCreated", e.name, err)
		}
	}
}

// EmitBusinessProgressed notifies all extensions that implement
// BusinessProgressed, then DealClosed when the transition closed the deal.
func (r *Registry) EmitBusinessProgressed(ctx context.Context, b *business.Business, tr *workflow.Transition, elapsed time.Duration) {
	for _, e := range r.businessProgressed {
		if err := e.hook.OnBusinessProgressed(ctx, b, tr, elapsed); err != nil {
			r.logHookError("OnBusinessProgressed", e.name, err)
		}
	}
	if tr.To == business.StatusWon || tr.To == business.StatusLost {
		r.EmitDealClosed(ctx, b)
	}
}

// EmitProgressRejected notifies all extensions that implement ProgressRejected.
func (r *Registry) EmitProgressRejected(ctx context.Context, fein string, progressErr error) {
	for _, e := range r.progressRejected {
		if err := e.hook.OnProgressRejected(ctx, fein, progressErr); err != nil {
			r.logHookError("OnProgressRejected", e.name, err)
		}
	}
}

// EmitDealClosed notifies all extensions that implement DealClosed.
func (r *Registry) EmitDealClosed(ctx context.Context, b *business.Business) {
	for _, e := range r.dealClosed {
		if err := e.hook.OnDealClosed(ctx, b); err != nil {
			r.logHookError("OnDealClosed", e.name, err)
		}
	}
}

// EmitShutdown notifies all extensions that implement Shutdown.
func (r *Registry) EmitShutdown(ctx context.Context) {
	for _, e := range r.shutdown {
		if err := e.hook.OnShutdown(ctx); err != nil {
			r.logHookError("OnShutdown", e.name, err)
		}
	}
}

// logHookError logs a warning when a hook returns an error. Hook errors
// are never propagated to the caller.
func (r *Registry) logHookError(hook, extName string, err error) {
	r.logger.Warn("extension hook error",
		slog.String("hook", hook),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
