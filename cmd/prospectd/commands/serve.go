package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xraph/prospect/api"
	"github.com/xraph/prospect/auth"
	"github.com/xraph/prospect/backoff"
	"github.com/xraph/prospect/engine"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, newLogger(cfg.Log))
		},
	}
}

// waitForStore pings st until it answers or cfg.PingAttempts runs out.
func waitForStore(ctx context.Context, st pinger, cfg StoreConfig, strategy backoff.Strategy, logger *slog.Logger) error {
	attempt := 0
	err := backoff.Retry(ctx, strategy, cfg.PingAttempts, func(ctx context.Context) error {
		attempt++
		err := st.Ping(ctx)
		if err != nil {
			logger.Warn("store not ready",
				slog.String("store", cfg.Driver),
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()),
			)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("ping %s store: %w", cfg.Driver, err)
	}
	return nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

func serve(ctx context.Context, cfg Config, logger *slog.Logger) error {
	mp, metricsHandler, err := newMetrics()
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := mp.Shutdown(context.Background()); shutdownErr != nil {
			logger.Warn("meter provider shutdown", slog.String("error", shutdownErr.Error()))
		}
	}()

	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Warn("close store", slog.String("error", closeErr.Error()))
		}
	}()

	if err := waitForStore(ctx, st, cfg.Store, backoff.DefaultStrategy(), logger); err != nil {
		return err
	}
	if cfg.Store.AutoMigrate {
		if err := st.Migrate(ctx); err != nil {
			return err
		}
	}

	eng, err := engine.New(st,
		engine.WithConfig(cfg.workflowConfig()),
		engine.WithLogger(logger),
		engine.WithMeterProvider(mp),
	)
	if err != nil {
		return err
	}

	apiOpts := []api.Option{api.WithLogger(logger)}
	if cfg.Auth.Enabled {
		apiOpts = append(apiOpts, api.WithAuthenticator(auth.NewJWTAuthenticator([]byte(cfg.Auth.Secret))))
	}
	if cfg.RateLimit.RPS > 0 {
		apiOpts = append(apiOpts, api.WithRateLimit(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler)
	mux.Handle("/", api.New(eng, nil, apiOpts...).Handler())

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("prospect listening",
			slog.String("addr", cfg.Server.Addr),
			slog.String("store", cfg.Store.Driver),
			slog.Bool("auth", cfg.Auth.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		eng.Shutdown(shutdownCtx)
		return nil
	})

	return g.Wait()
}
