package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
	"github.com/jakechorley/volunteer-board/pkg/db"
)

// SeedStore defines the database operations needed for seeding
type SeedStore interface {
	db.UserStore
	db.EventStore
}

// EnsureSeed adds the default manager when missing and the sample events
// when there are no events. It is safe to run on every start.
func EnsureSeed(ctx context.Context, database SeedStore, logger *zap.Logger, managerPassword string) error {
	logger.Debug("Checking seed data")

	managers, err := database.GetManagers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch managers: %w", err)
	}
	out, added, err := workflow.SeedManagers(managers, managerPassword)
	if err != nil {
		return fmt.Errorf("failed to seed managers: %w", err)
	}
	if added {
		if err := database.SetManagers(ctx, out); err != nil {
			return fmt.Errorf("failed to save managers: %w", err)
		}
		logger.Info("Seeded default manager", zap.String("email", workflow.DefaultManagerEmail))
	}

	events, err := database.GetEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}
	seeded, added := workflow.SeedEvents(events, NowFunc())
	if added {
		if err := database.SetEvents(ctx, seeded); err != nil {
			return fmt.Errorf("failed to save events: %w", err)
		}
		logger.Info("Seeded sample events", zap.Int("count", len(seeded)))
	}

	return nil
}
