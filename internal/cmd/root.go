package cmd

import (
	"os/signal"
	"syscall"

	"github.com/klokku/backoffice/internal/app"
	"github.com/klokku/backoffice/internal/config"
	"github.com/klokku/backoffice/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./config/application.yaml"

// NewRootCommand builds the backoffice CLI. Without a subcommand it serves the API.
func NewRootCommand() *cobra.Command {
	var configPath string

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and serve the back-office API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			application, err := app.NewApplication(ctx, cfg)
			if err != nil {
				return err
			}
			return application.Run(ctx)
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := database.Migrate(cfg.Database); err != nil {
				return err
			}
			log.Info("Migrations applied")
			return nil
		},
	}

	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "Back office API for budgets, clients and registrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to the YAML configuration file")
	root.AddCommand(serve, migrate)
	return root
}
