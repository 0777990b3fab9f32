package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
	"github.com/jakechorley/volunteer-board/pkg/kvstore"
)

// Store keys. Each holds one whole JSON collection.
const (
	KeyVolunteers   = "volunteers"
	KeyManagers     = "managers"
	KeyEvents       = "events"
	KeyApplications = "applications"
	KeyProfileDesc  = "profile_desc"
	KeyProfilePics  = "profile_pics"
)

// DB provides typed access to the collections held in a kvstore.Store
type DB struct {
	store kvstore.Store
}

var _ Database = (*DB)(nil)

// New wraps store
func New(store kvstore.Store) *DB {
	return &DB{store: store}
}

// Close closes the underlying store
func (d *DB) Close() error {
	return d.store.Close()
}

// getJSON decodes the value under key into out. A missing key leaves out untouched.
func getJSON(ctx context.Context, s kvstore.Store, key string, out any) error {
	data, err := s.Get(ctx, key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func setJSON(ctx context.Context, s kvstore.Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// GetVolunteers retrieves all volunteer records
func (d *DB) GetVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	volunteers := []model.Volunteer{}
	if err := getJSON(ctx, d.store, KeyVolunteers, &volunteers); err != nil {
		return nil, err
	}
	return volunteers, nil
}

// SetVolunteers replaces the volunteer collection
func (d *DB) SetVolunteers(ctx context.Context, volunteers []model.Volunteer) error {
	return setJSON(ctx, d.store, KeyVolunteers, nonNil(volunteers))
}

// GetManagers retrieves all manager records
func (d *DB) GetManagers(ctx context.Context) ([]model.Manager, error) {
	managers := []model.Manager{}
	if err := getJSON(ctx, d.store, KeyManagers, &managers); err != nil {
		return nil, err
	}
	return managers, nil
}

// SetManagers replaces the manager collection
func (d *DB) SetManagers(ctx context.Context, managers []model.Manager) error {
	return setJSON(ctx, d.store, KeyManagers, nonNil(managers))
}

// GetEvents retrieves all events
func (d *DB) GetEvents(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	if err := getJSON(ctx, d.store, KeyEvents, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SetEvents replaces the event collection
func (d *DB) SetEvents(ctx context.Context, events []model.Event) error {
	return setJSON(ctx, d.store, KeyEvents, nonNil(events))
}

// GetApplications retrieves all applications
func (d *DB) GetApplications(ctx context.Context) ([]model.Application, error) {
	apps := []model.Application{}
	if err := getJSON(ctx, d.store, KeyApplications, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// SetApplications replaces the application collection
func (d *DB) SetApplications(ctx context.Context, apps []model.Application) error {
	return setJSON(ctx, d.store, KeyApplications, nonNil(apps))
}

// GetProfileDescriptions retrieves the email → description map
func (d *DB) GetProfileDescriptions(ctx context.Context) (map[string]string, error) {
	desc := map[string]string{}
	if err := getJSON(ctx, d.store, KeyProfileDesc, &desc); err != nil {
		return nil, err
	}
	return desc, nil
}

// SetProfileDescriptions replaces the description map
func (d *DB) SetProfileDescriptions(ctx context.Context, desc map[string]string) error {
	if desc == nil {
		desc = map[string]string{}
	}
	return setJSON(ctx, d.store, KeyProfileDesc, desc)
}

// GetProfilePictures retrieves the email → picture data URL map
func (d *DB) GetProfilePictures(ctx context.Context) (map[string]string, error) {
	pics := map[string]string{}
	if err := getJSON(ctx, d.store, KeyProfilePics, &pics); err != nil {
		return nil, err
	}
	return pics, nil
}

// SetProfilePictures replaces the picture map
func (d *DB) SetProfilePictures(ctx context.Context, pics map[string]string) error {
	if pics == nil {
		pics = map[string]string{}
	}
	return setJSON(ctx, d.store, KeyProfilePics, pics)
}

// nonNil writes empty collections as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
