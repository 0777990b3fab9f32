package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
	"github.com/jakechorley/volunteer-board/pkg/db"
)

// CreateEvent creates an open event owned by the logged-in manager
func CreateEvent(ctx context.Context, database db.EventStore, logger *zap.Logger, acct model.Account, in workflow.EventInput) (model.Event, error) {
	manager, err := requireManager(acct)
	if err != nil {
		return model.Event{}, err
	}
	logger.Debug("Creating event", zap.String("title", in.Title), zap.String("manager", manager.Email))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to fetch events: %w", err)
	}

	out, event, err := workflow.CreateEvent(events, in, manager, NowFunc())
	if err != nil {
		return model.Event{}, err
	}
	if err := database.SetEvents(ctx, out); err != nil {
		return model.Event{}, fmt.Errorf("failed to save events: %w", err)
	}

	logger.Info("Event created",
		zap.Int64("id", event.ID),
		zap.String("title", event.Title),
		zap.String("start", event.StartDate),
		zap.String("end", event.EndDate))
	return event, nil
}

// CreateEventSeries creates one event per occurrence of an RFC 5545 rule.
// Nothing is saved unless every occurrence is valid.
func CreateEventSeries(ctx context.Context, database db.EventStore, logger *zap.Logger, acct model.Account, in workflow.EventInput, rule string) ([]model.Event, error) {
	manager, err := requireManager(acct)
	if err != nil {
		return nil, err
	}
	logger.Debug("Creating event series", zap.String("title", in.Title), zap.String("rule", rule))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	out, created, err := workflow.CreateEventSeries(events, in, rule, manager, NowFunc())
	if err != nil {
		return nil, err
	}
	if err := database.SetEvents(ctx, out); err != nil {
		return nil, fmt.Errorf("failed to save events: %w", err)
	}

	logger.Info("Event series created",
		zap.String("title", in.Title),
		zap.Int("count", len(created)),
		zap.String("first", created[0].StartDate),
		zap.String("last", created[len(created)-1].StartDate))
	return created, nil
}

// UpdateEvent overwrites the fields of an event owned by the logged-in manager
func UpdateEvent(ctx context.Context, database db.EventStore, logger *zap.Logger, acct model.Account, id int64, in workflow.EventInput) (model.Event, error) {
	manager, err := requireManager(acct)
	if err != nil {
		return model.Event{}, err
	}
	logger.Debug("Updating event", zap.Int64("id", id))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to fetch events: %w", err)
	}

	out, event, err := workflow.UpdateEvent(events, id, in, manager, NowFunc())
	if err != nil {
		return model.Event{}, err
	}
	if err := database.SetEvents(ctx, out); err != nil {
		return model.Event{}, fmt.Errorf("failed to save events: %w", err)
	}

	logger.Info("Event updated", zap.Int64("id", event.ID), zap.String("title", event.Title))
	return event, nil
}

// EndRecruiting closes an event to new applications
func EndRecruiting(ctx context.Context, database db.EventStore, logger *zap.Logger, acct model.Account, id int64) (model.Event, error) {
	manager, err := requireManager(acct)
	if err != nil {
		return model.Event{}, err
	}
	logger.Debug("Ending recruiting", zap.Int64("id", id))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return model.Event{}, fmt.Errorf("failed to fetch events: %w", err)
	}

	out, event, changed, err := workflow.EndRecruiting(events, id, manager)
	if err != nil {
		return model.Event{}, err
	}
	if !changed {
		logger.Debug("Recruiting already ended", zap.Int64("id", id))
		return event, nil
	}
	if err := database.SetEvents(ctx, out); err != nil {
		return model.Event{}, fmt.Errorf("failed to save events: %w", err)
	}

	logger.Info("Recruiting ended", zap.Int64("id", event.ID), zap.String("title", event.Title))
	return event, nil
}

// DeleteEvent removes an event and its applications. Applications are
// written first so a failure between the writes leaves no orphans.
func DeleteEvent(ctx context.Context, database db.EventApplicationStore, logger *zap.Logger, acct model.Account, id int64) (int, error) {
	manager, err := requireManager(acct)
	if err != nil {
		return 0, err
	}
	logger.Debug("Deleting event", zap.Int64("id", id))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch events: %w", err)
	}
	apps, err := database.GetApplications(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch applications: %w", err)
	}

	outEvents, outApps, removed, err := workflow.DeleteEvent(events, apps, id, manager)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		if err := database.SetApplications(ctx, outApps); err != nil {
			return 0, fmt.Errorf("failed to save applications: %w", err)
		}
	}
	if err := database.SetEvents(ctx, outEvents); err != nil {
		return 0, fmt.Errorf("failed to save events: %w", err)
	}

	logger.Info("Event deleted", zap.Int64("id", id), zap.Int("applications_removed", removed))
	return removed, nil
}

// ListEvents returns the events the logged-in user may see, narrowed by f.
// Managers see their own events; volunteers see open events plus closed ones
// they were accepted to.
func ListEvents(ctx context.Context, database db.EventApplicationStore, logger *zap.Logger, acct model.Account, f workflow.EventFilter) ([]model.Event, error) {
	logger.Debug("Listing events", zap.String("role", string(acct.Role)), zap.String("search", f.Search))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	switch acct.Role {
	case model.RoleManager:
		f.CreatedBy = acct.Email()
	case model.RoleVolunteer:
		apps, err := database.GetApplications(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch applications: %w", err)
		}
		events = workflow.VisibleToVolunteer(events, apps, acct.Email())
	default:
		return nil, &workflow.ForbiddenError{Err: workflow.ErrVolunteerOnly}
	}

	return workflow.FilterEvents(events, f), nil
}
