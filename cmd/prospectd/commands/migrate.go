package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply store schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cfg.Log)
			ctx := cmd.Context()

			st, err := openStore(ctx, cfg.Store, logger)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.Migrate(ctx); err != nil {
				return err
			}
			logger.Info("migrations complete", slog.String("store", cfg.Store.Driver))
			return nil
		},
	}
}
