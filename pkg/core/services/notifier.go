package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// Notifier tells an applicant their application was decided
type Notifier interface {
	NotifyStatusChange(ctx context.Context, app model.Application) error
}

// LogNotifier records notifications in the log only
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyStatusChange(ctx context.Context, app model.Application) error {
	n.logger.Info("Application status changed",
		zap.String("applicant", app.Applicant),
		zap.Int64("event_id", app.EventID),
		zap.String("title", app.Title),
		zap.String("status", string(app.Status)))
	return nil
}
