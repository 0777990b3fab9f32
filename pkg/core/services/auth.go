package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
	"github.com/jakechorley/volunteer-board/pkg/db"
)

// Signup creates a volunteer or manager account
func Signup(ctx context.Context, database db.UserStore, logger *zap.Logger, role model.Role, in workflow.SignupInput) (model.Account, error) {
	logger.Debug("Signing up", zap.String("role", string(role)), zap.String("email", in.Email))

	switch role {
	case model.RoleVolunteer:
		volunteers, err := database.GetVolunteers(ctx)
		if err != nil {
			return model.Account{}, fmt.Errorf("failed to fetch volunteers: %w", err)
		}
		out, v, err := workflow.SignupVolunteer(volunteers, in)
		if err != nil {
			return model.Account{}, err
		}
		if err := database.SetVolunteers(ctx, out); err != nil {
			return model.Account{}, fmt.Errorf("failed to save volunteers: %w", err)
		}
		logger.Info("Volunteer signed up", zap.String("email", v.Email), zap.String("type", string(v.Type)))
		return model.VolunteerAccount(v), nil

	case model.RoleManager:
		managers, err := database.GetManagers(ctx)
		if err != nil {
			return model.Account{}, fmt.Errorf("failed to fetch managers: %w", err)
		}
		out, m, err := workflow.SignupManager(managers, in)
		if err != nil {
			return model.Account{}, err
		}
		if err := database.SetManagers(ctx, out); err != nil {
			return model.Account{}, fmt.Errorf("failed to save managers: %w", err)
		}
		logger.Info("Manager signed up", zap.String("email", m.Email))
		return model.ManagerAccount(m), nil
	}

	return model.Account{}, fmt.Errorf("unknown role %q", role)
}

// Login checks identifier (email, phone or name) and password against both
// collections. A legacy plaintext password is replaced by its hash; failing to
// save the upgrade does not fail the login.
func Login(ctx context.Context, database db.UserStore, logger *zap.Logger, identifier, password string) (model.Account, error) {
	logger.Debug("Logging in", zap.String("identifier", identifier))

	volunteers, err := database.GetVolunteers(ctx)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to fetch volunteers: %w", err)
	}
	managers, err := database.GetManagers(ctx)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to fetch managers: %w", err)
	}

	res, err := workflow.Authenticate(volunteers, managers, identifier, password)
	if err != nil {
		logger.Debug("Login failed", zap.String("identifier", identifier), zap.Error(err))
		return model.Account{}, err
	}

	if res.Upgraded {
		if err := saveUpgradedPassword(ctx, database, volunteers, managers, res.Account); err != nil {
			logger.Warn("Failed to save upgraded password hash", zap.String("email", res.Account.Email()), zap.Error(err))
		} else {
			logger.Info("Upgraded legacy password", zap.String("email", res.Account.Email()))
		}
	}

	logger.Info("Logged in", zap.String("email", res.Account.Email()), zap.String("role", string(res.Account.Role)))
	return res.Account, nil
}

func saveUpgradedPassword(ctx context.Context, database db.UserStore, volunteers []model.Volunteer, managers []model.Manager, acct model.Account) error {
	if acct.Volunteer != nil {
		return database.SetVolunteers(ctx, workflow.ReplaceVolunteer(volunteers, *acct.Volunteer))
	}
	return database.SetManagers(ctx, workflow.ReplaceManager(managers, *acct.Manager))
}

// RefreshAccount reloads the stored record behind acct
func RefreshAccount(ctx context.Context, database db.UserStore, acct model.Account) (model.Account, error) {
	switch acct.Role {
	case model.RoleVolunteer:
		volunteers, err := database.GetVolunteers(ctx)
		if err != nil {
			return model.Account{}, fmt.Errorf("failed to fetch volunteers: %w", err)
		}
		for _, v := range volunteers {
			if v.Email == acct.Email() {
				return model.VolunteerAccount(v), nil
			}
		}
	case model.RoleManager:
		managers, err := database.GetManagers(ctx)
		if err != nil {
			return model.Account{}, fmt.Errorf("failed to fetch managers: %w", err)
		}
		for _, m := range managers {
			if m.Email == acct.Email() {
				return model.ManagerAccount(m), nil
			}
		}
	}
	return model.Account{}, &workflow.NotFoundError{Err: workflow.ErrUserNotFound}
}
