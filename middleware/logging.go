package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/xraph/prospect/business"
)

// Logging returns middleware that logs each transition and its outcome.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, b *business.Business, next Handler) error {
		from := b.Status
		logger.DebugContext(ctx, "transition started",
			slog.String("fein", b.FEIN),
			slog.String("from", string(from)),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.InfoContext(ctx, "transition rejected",
				slog.String("fein", b.FEIN),
				slog.String("from", string(from)),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.InfoContext(ctx, "transition completed",
				slog.String("fein", b.FEIN),
				slog.String("from", string(from)),
				slog.String("to", string(b.Status)),
				slog.Int64("version", b.Version),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
