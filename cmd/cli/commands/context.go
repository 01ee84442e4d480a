package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/team-matcher/internal/config"
	"github.com/jakechorley/team-matcher/pkg/clients/csvclient"
	"github.com/jakechorley/team-matcher/pkg/clients/sheetsclient"
	"github.com/jakechorley/team-matcher/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	Loader   *csvclient.Client
	Database db.Database // nil when no databaseURL is configured
	Logger   *zap.Logger
	Ctx      context.Context

	sheetsClient *sheetsclient.Client
}

// SheetsClient returns the Google Sheets client, running the OAuth flow the
// first time it is needed
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheetsClient = client
	return client, nil
}

// RequireDatabase returns the database or an error naming the missing setting
func (app *AppContext) RequireDatabase() (db.Database, error) {
	if app.Database == nil {
		return nil, fmt.Errorf("no database configured: set databaseURL in matcher_config.%s.yaml", app.Env)
	}
	return app.Database, nil
}
