package workflow

import (
	"slices"
	"time"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

const (
	DefaultManagerEmail    = "manager@example.com"
	DefaultManagerPassword = "123456"
)

// SeedManagers adds the default manager when no manager uses its email.
// added is false when the collection already had it.
func SeedManagers(managers []model.Manager, password string) (out []model.Manager, added bool, err error) {
	for _, m := range managers {
		if m.Email == DefaultManagerEmail {
			return managers, false, nil
		}
	}
	if password == "" {
		password = DefaultManagerPassword
	}

	m := model.Manager{User: model.User{
		Email:     DefaultManagerEmail,
		Name:      "Default Manager",
		FirstName: "Default",
		LastName:  "Manager",
		Address:   "123 Management Way",
		Tags:      "Event Planning, Leadership",
		Role:      model.RoleManager,
	}}
	if err := setPassword(&m.User, password); err != nil {
		return nil, false, err
	}
	return append(slices.Clone(managers), m), true, nil
}

// SeedEvents adds two sample events when the collection is empty. The
// samples bypass date validation: their dates are fixed and in the past.
func SeedEvents(events []model.Event, now time.Time) ([]model.Event, bool) {
	if len(events) > 0 {
		return events, false
	}
	base := now.UnixMilli()
	return []model.Event{
		{
			ID:          base + 1,
			Title:       "Beach Cleanup",
			StartDate:   "2025-02-20",
			EndDate:     "2025-02-21",
			Volunteers:  20,
			Description: "Cleaning the shoreline.",
			CreatedBy:   DefaultManagerEmail,
			Recruiting:  model.Bool(true),
		},
		{
			ID:          base + 2,
			Title:       "Food Drive",
			StartDate:   "2025-02-25",
			EndDate:     "2025-02-26",
			Volunteers:  15,
			Description: "Helping collect food.",
			CreatedBy:   DefaultManagerEmail,
			Recruiting:  model.Bool(true),
		},
	}, true
}
