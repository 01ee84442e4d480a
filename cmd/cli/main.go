package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/cmd/cli/commands"
	"github.com/jakechorley/team-matcher/internal/config"
	"github.com/jakechorley/team-matcher/pkg/clients/csvclient"
	"github.com/jakechorley/team-matcher/pkg/postgres"
	"github.com/jakechorley/team-matcher/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Team Matcher CLI - Match students to project teams",
		Long:  `A CLI tool for assigning students to project teams by their rankings, team composition rules and diversity.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages to the console")
	if err := rootCmd.MarkPersistentFlagRequired("env"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(commands.MatchCmd(app))
	rootCmd.AddCommand(commands.DemandCmd(app))
	rootCmd.AddCommand(commands.RunsCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, loader, and database
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	logger, logFile, err := logging.New(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger
	zap.ReplaceGlobals(logger)

	app.Logger.Info("Starting application", zap.String("environment", env), zap.String("log_file", logFile))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Loader = csvclient.NewClient()

	if app.Cfg.DatabaseURL == "" {
		app.Logger.Info("No databaseURL configured, runs will not be saved")
		return nil
	}

	app.Logger.Info("Connecting to database")
	database, err := postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(app.Ctx); err != nil {
		database.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = database
	app.Logger.Info("Database initialized successfully")

	return nil
}
