package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/core/workflow"
	"github.com/jakechorley/volunteer-board/pkg/db"
)

// GetProfile returns the stored record of the logged-in user with its
// description and picture
func GetProfile(ctx context.Context, database db.ProfileStore, logger *zap.Logger, acct model.Account) (model.Profile, error) {
	logger.Debug("Fetching profile", zap.String("email", acct.Email()))

	fresh, err := RefreshAccount(ctx, database, acct)
	if err != nil {
		return model.Profile{}, err
	}
	desc, err := database.GetProfileDescriptions(ctx)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to fetch profile descriptions: %w", err)
	}
	pics, err := database.GetProfilePictures(ctx)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to fetch profile pictures: %w", err)
	}

	return model.Profile{
		Account:     fresh,
		Description: desc[fresh.Email()],
		Picture:     pics[fresh.Email()],
	}, nil
}

// SaveProfile overwrites the profile fields and description of the logged-in user
func SaveProfile(ctx context.Context, database db.ProfileStore, logger *zap.Logger, acct model.Account, in workflow.ProfileInput, description string) (model.Profile, error) {
	email := acct.Email()
	logger.Debug("Saving profile", zap.String("email", email))

	// every read happens before the first write
	desc, err := database.GetProfileDescriptions(ctx)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to fetch profile descriptions: %w", err)
	}
	pics, err := database.GetProfilePictures(ctx)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to fetch profile pictures: %w", err)
	}

	var saved model.Account
	switch acct.Role {
	case model.RoleVolunteer:
		volunteers, err := database.GetVolunteers(ctx)
		if err != nil {
			return model.Profile{}, fmt.Errorf("failed to fetch volunteers: %w", err)
		}
		out, v, err := workflow.SaveVolunteerProfile(volunteers, email, in)
		if err != nil {
			return model.Profile{}, err
		}
		if err := database.SetVolunteers(ctx, out); err != nil {
			return model.Profile{}, fmt.Errorf("failed to save volunteers: %w", err)
		}
		saved = model.VolunteerAccount(v)

	case model.RoleManager:
		managers, err := database.GetManagers(ctx)
		if err != nil {
			return model.Profile{}, fmt.Errorf("failed to fetch managers: %w", err)
		}
		out, m, err := workflow.SaveManagerProfile(managers, email, in)
		if err != nil {
			return model.Profile{}, err
		}
		if err := database.SetManagers(ctx, out); err != nil {
			return model.Profile{}, fmt.Errorf("failed to save managers: %w", err)
		}
		saved = model.ManagerAccount(m)

	default:
		return model.Profile{}, &workflow.NotFoundError{Err: workflow.ErrUserNotFound}
	}

	if err := database.SetProfileDescriptions(ctx, workflow.SetSideEntry(desc, email, description)); err != nil {
		return model.Profile{}, fmt.Errorf("failed to save profile descriptions: %w", err)
	}

	logger.Info("Profile saved", zap.String("email", email), zap.String("name", saved.DisplayName()))
	return model.Profile{Account: saved, Description: description, Picture: pics[email]}, nil
}

// SetProfilePicture stores image data as the logged-in user's picture.
// An empty mime type is detected from the data.
func SetProfilePicture(ctx context.Context, database db.ProfileStore, logger *zap.Logger, acct model.Account, data []byte, mime string) (string, error) {
	email := acct.Email()
	logger.Debug("Setting profile picture", zap.String("email", email), zap.Int("bytes", len(data)))

	if _, err := RefreshAccount(ctx, database, acct); err != nil {
		return "", err
	}
	url, err := workflow.EncodePicture(data, mime)
	if err != nil {
		return "", err
	}

	pics, err := database.GetProfilePictures(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch profile pictures: %w", err)
	}
	if err := database.SetProfilePictures(ctx, workflow.SetSideEntry(pics, email, url)); err != nil {
		return "", fmt.Errorf("failed to save profile pictures: %w", err)
	}

	logger.Info("Profile picture set", zap.String("email", email))
	return url, nil
}
