package db

import (
	"context"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// UserStore defines the operations on the volunteer and manager collections
type UserStore interface {
	GetVolunteers(ctx context.Context) ([]model.Volunteer, error)
	SetVolunteers(ctx context.Context, volunteers []model.Volunteer) error
	GetManagers(ctx context.Context) ([]model.Manager, error)
	SetManagers(ctx context.Context, managers []model.Manager) error
}

// EventStore defines the operations on the event collection
type EventStore interface {
	GetEvents(ctx context.Context) ([]model.Event, error)
	SetEvents(ctx context.Context, events []model.Event) error
}

// ApplicationStore defines the operations on the application collection
type ApplicationStore interface {
	GetApplications(ctx context.Context) ([]model.Application, error)
	SetApplications(ctx context.Context, apps []model.Application) error
}

// EventApplicationStore is needed by operations spanning events and applications
type EventApplicationStore interface {
	EventStore
	ApplicationStore
}

// ProfileStore defines the operations needed to read and edit profiles
type ProfileStore interface {
	UserStore
	GetProfileDescriptions(ctx context.Context) (map[string]string, error)
	SetProfileDescriptions(ctx context.Context, desc map[string]string) error
	GetProfilePictures(ctx context.Context) (map[string]string, error)
	SetProfilePictures(ctx context.Context, pics map[string]string) error
}

// Database defines the interface for all collection operations.
// DB implements it over any kvstore.Store backend.
type Database interface {
	ProfileStore
	EventApplicationStore
	Close() error
}
