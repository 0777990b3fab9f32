package workflow

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// NewApplicationID generates application ids (mockable)
var NewApplicationID = uuid.NewString

// FindApplication returns the application for the (eventID, applicant) pair
func FindApplication(apps []model.Application, eventID int64, applicant string) (model.Application, bool) {
	for _, a := range apps {
		if a.EventID == eventID && a.Applicant == applicant {
			return a, true
		}
	}
	return model.Application{}, false
}

// Apply records a pending application by volunteer to event.
// It fails if the pair already has a pending or accepted application, or the
// event is closed. A rejected record for the pair is replaced, so each pair
// has at most one record.
func Apply(apps []model.Application, event model.Event, volunteer model.Volunteer, now time.Time) ([]model.Application, model.Application, error) {
	if existing, ok := FindApplication(apps, event.ID, volunteer.Email); ok {
		switch existing.Status {
		case model.StatusPending:
			return nil, model.Application{}, conflict(ErrPendingExists)
		case model.StatusAccepted:
			return nil, model.Application{}, conflict(ErrAccepted)
		}
	}
	if !event.IsRecruiting() {
		return nil, model.Application{}, conflict(ErrNotRecruiting)
	}

	out := make([]model.Application, 0, len(apps)+1)
	for _, a := range apps {
		if !(a.EventID == event.ID && a.Applicant == volunteer.Email) {
			out = append(out, a)
		}
	}

	app := model.Application{
		ID:            NewApplicationID(),
		EventID:       event.ID,
		Title:         event.Title,
		Status:        model.StatusPending,
		VolunteerType: volunteer.Type,
		Applicant:     volunteer.Email,
		Organizer:     event.CreatedBy,
		DateApplied:   now.UTC().Format(time.RFC3339),
	}
	return append(out, app), app, nil
}

// UpdateStatus moves a pending application to accepted or rejected.
// Only the event's organizer may decide.
func UpdateStatus(apps []model.Application, eventID int64, applicant string, status model.Status, manager model.Manager) ([]model.Application, model.Application, error) {
	if status != model.StatusAccepted && status != model.StatusRejected {
		return nil, model.Application{}, invalid(ErrInvalidStatus, FieldError{Field: "status", Message: ErrInvalidStatus.Error()})
	}

	idx := slices.IndexFunc(apps, func(a model.Application) bool {
		return a.EventID == eventID && a.Applicant == applicant
	})
	if idx < 0 {
		return nil, model.Application{}, notFound(ErrApplicationNotFound)
	}
	if apps[idx].Organizer != manager.Email {
		return nil, model.Application{}, forbidden(ErrNotOwner)
	}
	if apps[idx].Status != model.StatusPending {
		return nil, model.Application{}, conflict(ErrNotPending)
	}

	out := slices.Clone(apps)
	out[idx].Status = status
	return out, out[idx], nil
}

// ManagerApplications lists applications addressed to organizer. An empty
// status matches all; search matches event title or applicant email.
func ManagerApplications(apps []model.Application, organizer string, status model.Status, search string) []model.Application {
	out := make([]model.Application, 0)
	for _, a := range apps {
		if a.Organizer != organizer {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		if search != "" && !containsFold(a.Title, search) && !containsFold(a.Applicant, search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// VolunteerApplications lists the volunteer's own applications, optionally
// filtered by event title.
func VolunteerApplications(apps []model.Application, applicant string, search string) []model.Application {
	out := make([]model.Application, 0)
	for _, a := range apps {
		if a.Applicant != applicant {
			continue
		}
		if search != "" && !containsFold(a.Title, search) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// VolunteerHistory lists the events the volunteer was accepted to
func VolunteerHistory(apps []model.Application, applicant string) []model.Application {
	out := make([]model.Application, 0)
	for _, a := range apps {
		if a.Applicant == applicant && a.Status == model.StatusAccepted {
			out = append(out, a)
		}
	}
	return out
}

// PendingCount counts pending applications addressed to organizer
func PendingCount(apps []model.Application, organizer string) int {
	n := 0
	for _, a := range apps {
		if a.Organizer == organizer && a.Status == model.StatusPending {
			n++
		}
	}
	return n
}
