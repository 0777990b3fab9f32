package workflow

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

var testNow = time.Date(2025, time.February, 10, 15, 30, 0, 0, time.UTC)

func testManager(email string) model.Manager {
	return model.Manager{User: model.User{Email: email, Name: "Test Manager", Role: model.RoleManager}}
}

func testVolunteer(email string) model.Volunteer {
	return model.Volunteer{
		User: model.User{Email: email, Name: "Test Volunteer", Role: model.RoleVolunteer},
		Type: model.VolunteerTypeStudent,
	}
}

func beachCleanup() EventInput {
	return EventInput{
		Title:       "Beach Cleanup",
		StartDate:   "2025-02-20",
		EndDate:     "2025-02-21",
		Volunteers:  20,
		Description: "Cleaning the shoreline.",
	}
}

func fieldNames(err error) []string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}
