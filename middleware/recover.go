package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/xraph/prospect/business"
)

// Recover returns middleware that recovers from panics in the handler chain.
// Panics are converted to errors and logged with a stack trace.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, b *business.Business, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "transition panicked",
					slog.String("fein", b.FEIN),
					slog.String("status", string(b.Status)),
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())),
				)
				retErr = fmt.Errorf("panic progressing business %s: %v", b.FEIN, r)
			}
		}()
		return next(ctx)
	}
}
