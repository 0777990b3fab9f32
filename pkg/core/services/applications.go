package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
	"github.com/jakechorley/volunteer-board/pkg/db"
)

// Apply submits a pending application from the logged-in volunteer
func Apply(ctx context.Context, database db.EventApplicationStore, logger *zap.Logger, acct model.Account, eventID int64) (model.Application, error) {
	volunteer, err := requireVolunteer(acct)
	if err != nil {
		return model.Application{}, err
	}
	logger.Debug("Applying to event", zap.Int64("event_id", eventID), zap.String("volunteer", volunteer.Email))

	events, err := database.GetEvents(ctx)
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to fetch events: %w", err)
	}
	event, ok := workflow.FindEvent(events, eventID)
	if !ok {
		return model.Application{}, &workflow.NotFoundError{Err: workflow.ErrEventNotFound}
	}

	apps, err := database.GetApplications(ctx)
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to fetch applications: %w", err)
	}

	out, app, err := workflow.Apply(apps, event, volunteer, NowFunc())
	if err != nil {
		return model.Application{}, err
	}
	if err := database.SetApplications(ctx, out); err != nil {
		return model.Application{}, fmt.Errorf("failed to save applications: %w", err)
	}

	logger.Info("Applied to event",
		zap.String("id", app.ID),
		zap.Int64("event_id", app.EventID),
		zap.String("title", app.Title),
		zap.String("volunteer", app.Applicant))
	return app, nil
}

// UpdateStatus accepts or rejects a pending application to one of the
// manager's events, then notifies the applicant. A failed notification is
// logged; the decision stays saved.
func UpdateStatus(ctx context.Context, database db.ApplicationStore, logger *zap.Logger, notifier Notifier, acct model.Account, eventID int64, applicant string, status model.Status) (model.Application, error) {
	manager, err := requireManager(acct)
	if err != nil {
		return model.Application{}, err
	}
	logger.Debug("Updating application status",
		zap.Int64("event_id", eventID),
		zap.String("applicant", applicant),
		zap.String("status", string(status)))

	apps, err := database.GetApplications(ctx)
	if err != nil {
		return model.Application{}, fmt.Errorf("failed to fetch applications: %w", err)
	}

	out, app, err := workflow.UpdateStatus(apps, eventID, applicant, status, manager)
	if err != nil {
		return model.Application{}, err
	}
	if err := database.SetApplications(ctx, out); err != nil {
		return model.Application{}, fmt.Errorf("failed to save applications: %w", err)
	}

	logger.Info("Application status updated",
		zap.Int64("event_id", app.EventID),
		zap.String("applicant", app.Applicant),
		zap.String("status", string(app.Status)))

	if notifier != nil {
		if err := notifier.NotifyStatusChange(ctx, app); err != nil {
			logger.Warn("Failed to notify applicant", zap.String("applicant", app.Applicant), zap.Error(err))
		}
	}
	return app, nil
}

// ListApplications returns the applications relevant to the logged-in user:
// for a manager those addressed to them (optionally by status), for a
// volunteer their own. search matches the event title, and for managers
// also the applicant email.
func ListApplications(ctx context.Context, database db.ApplicationStore, logger *zap.Logger, acct model.Account, status model.Status, search string) ([]model.Application, error) {
	logger.Debug("Listing applications", zap.String("role", string(acct.Role)), zap.String("status", string(status)))

	if status != "" && !status.IsValid() {
		return nil, &workflow.ValidationError{
			Err:    workflow.ErrInvalidInput,
			Fields: []workflow.FieldError{{Field: "status", Message: "must be one of: pending, accepted, rejected"}},
		}
	}

	apps, err := database.GetApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	switch acct.Role {
	case model.RoleManager:
		return workflow.ManagerApplications(apps, acct.Email(), status, search), nil
	case model.RoleVolunteer:
		own := workflow.VolunteerApplications(apps, acct.Email(), search)
		if status == "" {
			return own, nil
		}
		filtered := make([]model.Application, 0, len(own))
		for _, a := range own {
			if a.Status == status {
				filtered = append(filtered, a)
			}
		}
		return filtered, nil
	}
	return nil, &workflow.ForbiddenError{Err: workflow.ErrVolunteerOnly}
}

// History returns the events the logged-in volunteer was accepted to
func History(ctx context.Context, database db.ApplicationStore, logger *zap.Logger, acct model.Account) ([]model.Application, error) {
	volunteer, err := requireVolunteer(acct)
	if err != nil {
		return nil, err
	}
	logger.Debug("Fetching volunteer history", zap.String("volunteer", volunteer.Email))

	apps, err := database.GetApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return workflow.VolunteerHistory(apps, volunteer.Email), nil
}

// PendingCount counts the pending applications awaiting the logged-in manager
func PendingCount(ctx context.Context, database db.ApplicationStore, acct model.Account) (int, error) {
	manager, err := requireManager(acct)
	if err != nil {
		return 0, err
	}
	apps, err := database.GetApplications(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch applications: %w", err)
	}
	return workflow.PendingCount(apps, manager.Email), nil
}
