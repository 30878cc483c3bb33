package middleware

import (
	"context"

	"github.com/xraph/prospect/business"
)

// Handler is the terminal function that advances and persists a business.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the business being progressed, and the next handler.
type Middleware func(ctx context.Context, b *business.Business, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// The first middleware in the list is the outermost wrapper.
//
// Example: Chain(logging, recover) executes as:
//
//	logging → recover → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, b *business.Business, next Handler) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, b, prev)
			}
		}
		return h(ctx)
	}
}
