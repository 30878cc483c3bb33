package middleware

import (
	"context"
	"time"

	"github.com/xraph/prospect/business"
)

// Timeout returns middleware that bounds each transition with d. A zero or
// negative d disables the deadline. Store calls observe the derived
// context and fail with context.DeadlineExceeded when it expires.
func Timeout(d time.Duration) Middleware {
	return func(ctx context.Context, _ *business.Business, next Handler) error {
		if d <= 0 {
			return next(ctx)
		}
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return next(ctx)
	}
}
