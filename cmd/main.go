package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"yummy-backend/cmd/config"
	migration "yummy-backend/cmd/database/migrate"
	"yummy-backend/internal/utils"
	"yummy-backend/pkg/jwt"
	"yummy-backend/pkg/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
	log        *logger.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "yummy",
		Short:         "Recipe catalog backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			utils.LoadConfigFile(opts.configFile)
			log, err := logger.New(utils.GetConfig("LOG_MODE"))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				opts.log.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "config.yaml", "path to the yaml config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newRebuildPathsCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))
	return cmd
}

func connect(opts *rootOptions) (*gorm.DB, error) {
	db, err := config.ConnectDB()
	if err != nil {
		opts.log.Error("database connection failed", "error", err)
		return nil, err
	}
	return db, nil
}

func newServeCommand(opts *rootOptions) *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect(opts)
			if err != nil {
				return err
			}
			if migrate {
				if err := migration.Migrate(db, opts.log); err != nil {
					return err
				}
			}
			c, err := config.NewCache(opts.log)
			if err != nil {
				return fmt.Errorf("init cache: %w", err)
			}

			app, err := config.NewApp(config.NewServices(db, c, opts.log), opts.log)
			if err != nil {
				return err
			}
			port := utils.GetConfig("APP_PORT")
			opts.log.Info("server starting", "port", port)
			return app.Listen(":" + port)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")
	return cmd
}

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect(opts)
			if err != nil {
				return err
			}
			return migration.Migrate(db, opts.log)
		},
	}
}

func newRebuildPathsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild-paths",
		Short: "Recompute every category path from the roots down",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect(opts)
			if err != nil {
				return err
			}
			c, err := config.NewCache(opts.log)
			if err != nil {
				return fmt.Errorf("init cache: %w", err)
			}
			services := config.NewServices(db, c, opts.log)

			changed, err := services.Categories.RebuildPaths(context.Background())
			if err != nil {
				return err
			}
			opts.log.Info("category paths rebuilt", "changed", changed)
			fmt.Fprintf(cmd.OutOrStdout(), "%d categories updated\n", changed)
			return nil
		},
	}
}

func newTokenCommand(opts *rootOptions) *cobra.Command {
	var (
		role string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <owner-id>",
		Short: "Issue an owner token for local development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("owner id: %w", err)
			}
			token, err := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), utils.GetConfig("JWT_ISSUER")).GenerateToken(owner, role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "editor", "role claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 2*time.Hour, "token lifetime")
	return cmd
}
