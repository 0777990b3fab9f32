package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/internal/config"
	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/services"
	"github.com/jakechorley/volunteer-board/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Notifier services.Notifier
	Logger   *zap.Logger
	Ctx      context.Context

	// Session is the account logged in during an interactive session
	Session *model.Account

	// PromptPassword reads a password without echo; nil disables prompting
	PromptPassword func(prompt string) (string, error)
}
