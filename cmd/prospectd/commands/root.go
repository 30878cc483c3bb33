package commands

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	addrFlag   string
	storeFlag  string
	dsnFlag    string

	cfg Config
)

// Execute runs the prospectd root command.
func Execute() error {
	root := &cobra.Command{
		Use:           "prospectd",
		Short:         "Business qualification workflow service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := loadConfig(configPath, os.Getenv)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("addr") {
				loaded.Server.Addr = addrFlag
			}
			if flags.Changed("store") {
				loaded.Store.Driver = storeFlag
			}
			if flags.Changed("dsn") {
				loaded.Store.DSN = dsnFlag
			}

			if err := loaded.validate(); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&addrFlag, "addr", "", "HTTP listen address (default :3000 or :$PORT)")
	root.PersistentFlags().StringVar(&storeFlag, "store", "", "store driver: memory, postgres, bun, sqlite, redis, mongo")
	root.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "store connection string (default $DATABASE_URL)")

	root.AddCommand(serveCmd(), migrateCmd())
	return root.Execute()
}
