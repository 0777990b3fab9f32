package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/cmd/cli/commands"
	"github.com/jakechorley/volunteer-board/internal/config"
	"github.com/jakechorley/volunteer-board/pkg/clients/gmailclient"
	"github.com/jakechorley/volunteer-board/pkg/core/services"
	"github.com/jakechorley/volunteer-board/pkg/db"
	"github.com/jakechorley/volunteer-board/pkg/utils"
	"github.com/jakechorley/volunteer-board/pkg/utils/logging"
)

var _ services.Notifier = (*gmailclient.Client)(nil)

var env string

func main() {
	app := &commands.AppContext{
		Ctx:            context.Background(),
		PromptPassword: commands.TerminalPassword,
	}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Volunteer Board CLI - coordinate events and volunteers",
		Long:  `A CLI tool for managers to publish volunteering events and for volunteers to find and apply to them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				if err := app.Database.Close(); err != nil && app.Logger != nil {
					app.Logger.Warn("Failed to close store", zap.Error(err))
				}
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	commands.Register(rootCmd, app)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger, store, seed data and notifier
func initApp(app *commands.AppContext) error {
	// Load configuration first: it names the logs directory
	cfg, cfgErr := config.LoadWithEnv(env)
	if errors.Is(cfgErr, config.ErrNotFound) {
		cfg, cfgErr = config.Default(), nil
	}
	if cfgErr != nil {
		return fmt.Errorf("failed to load config: %w", cfgErr)
	}
	app.Cfg = cfg

	logger, err := logging.InitLogger(env, cfg.LogsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Configuration loaded",
		zap.String("backend", cfg.Store.Backend),
		zap.String("timezone", cfg.Timezone),
		zap.String("notifications", cfg.Notifications.Channel))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	services.NowFunc = func() time.Time { return time.Now().In(loc) }

	store, err := openStore(app.Ctx, cfg.Store, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	app.Database = db.New(store)
	app.Logger.Info("Store initialized successfully")

	if cfg.Seed.Enabled {
		if err := services.EnsureSeed(app.Ctx, app.Database, app.Logger, cfg.Seed.ManagerPassword); err != nil {
			return fmt.Errorf("failed to seed store: %w", err)
		}
	}

	app.Notifier, err = newNotifier(app.Ctx, cfg, app.Logger)
	if err != nil {
		return err
	}

	return nil
}

// newNotifier builds the configured notification channel
func newNotifier(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.Notifier, error) {
	if cfg.Notifications.Channel != config.ChannelGmail {
		return services.NewLogNotifier(logger), nil
	}

	logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, err
	}
	tokens, err := utils.NewTokenStore(logger)
	if err != nil {
		return nil, err
	}
	token, err := tokens.Token(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	logger.Info("Initializing gmail client")
	client, err := gmailclient.NewClient(ctx, oauthCfg, token, cfg.Notifications)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail client: %w", err)
	}
	logger.Debug("Gmail client initialized successfully")
	return client, nil
}
