package workflow

import (
	"slices"
	"strings"
	"time"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// MaxEventTags is the number of tags an event may carry
const MaxEventTags = 3

// EventInput contains the editable fields of an event
type EventInput struct {
	Title       string   `json:"title" validate:"required,singleline"`
	StartDate   string   `json:"startDate" validate:"required,isodate"`
	EndDate     string   `json:"endDate" validate:"required,isodate"`
	Volunteers  int      `json:"volunteers" validate:"required,gt=0"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags" validate:"max=3,dive,eventtag"`
}

func (in *EventInput) clean() {
	in.Title = strings.TrimSpace(in.Title)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.EndDate = strings.TrimSpace(in.EndDate)
	in.Description = strings.TrimSpace(in.Description)

	var tags []string
	for _, t := range in.Tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(tags, t) {
			tags = append(tags, t)
		}
	}
	in.Tags = tags
}

// validateEventInput checks the fields and the date rules relative to now:
// the start date may not be before today and the end date may not be before the start.
func validateEventInput(in *EventInput, now time.Time) error {
	in.clean()
	if err := validateStruct(in); err != nil {
		return err
	}

	start, err := parseDate(in.StartDate, now.Location())
	if err != nil {
		return invalid(ErrInvalidInput, FieldError{Field: "startDate", Message: err.Error()})
	}
	end, err := parseDate(in.EndDate, now.Location())
	if err != nil {
		return invalid(ErrInvalidInput, FieldError{Field: "endDate", Message: err.Error()})
	}

	if start.Before(startOfDay(now)) {
		return invalid(ErrStartInPast, FieldError{Field: "startDate", Message: ErrStartInPast.Error()})
	}
	if end.Before(start) {
		return invalid(ErrEndBeforeStart, FieldError{Field: "endDate", Message: ErrEndBeforeStart.Error()})
	}
	return nil
}

// nextEventID derives an id from the creation time, bumping it until unused
func nextEventID(events []model.Event, now time.Time) int64 {
	id := now.UnixMilli()
	for {
		taken := false
		for _, e := range events {
			if e.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id++
	}
}

// FindEvent returns the event with the given id
func FindEvent(events []model.Event, id int64) (model.Event, bool) {
	for _, e := range events {
		if e.ID == id {
			return e, true
		}
	}
	return model.Event{}, false
}

// ownedEvent returns the index of the event with id, checking manager owns it
func ownedEvent(events []model.Event, id int64, manager model.Manager) (int, error) {
	for i, e := range events {
		if e.ID != id {
			continue
		}
		if e.CreatedBy != manager.Email {
			return -1, forbidden(ErrNotOwner)
		}
		return i, nil
	}
	return -1, notFound(ErrEventNotFound)
}

// CreateEvent validates in and appends a new open event owned by manager.
func CreateEvent(events []model.Event, in EventInput, manager model.Manager, now time.Time) ([]model.Event, model.Event, error) {
	if err := validateEventInput(&in, now); err != nil {
		return nil, model.Event{}, err
	}

	e := model.Event{
		ID:          nextEventID(events, now),
		Title:       in.Title,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Volunteers:  in.Volunteers,
		Description: in.Description,
		CreatedBy:   manager.Email,
		Tags:        in.Tags,
		Recruiting:  model.Bool(true),
	}
	return append(slices.Clone(events), e), e, nil
}

// UpdateEvent replaces the fields of the event with id. The recruiting flag,
// owner and id are kept. Applications are not touched, so their copied
// titles go stale.
func UpdateEvent(events []model.Event, id int64, in EventInput, manager model.Manager, now time.Time) ([]model.Event, model.Event, error) {
	idx, err := ownedEvent(events, id, manager)
	if err != nil {
		return nil, model.Event{}, err
	}
	if err := validateEventInput(&in, now); err != nil {
		return nil, model.Event{}, err
	}

	prev := events[idx]
	e := model.Event{
		ID:          prev.ID,
		Title:       in.Title,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Volunteers:  in.Volunteers,
		Description: in.Description,
		CreatedBy:   prev.CreatedBy,
		Tags:        in.Tags,
		Recruiting:  model.Bool(prev.IsRecruiting()),
	}

	out := slices.Clone(events)
	out[idx] = e
	return out, e, nil
}

// EndRecruiting closes an event to new applications. There is no way back.
// Closing an already closed event is a no-op and changed is false.
func EndRecruiting(events []model.Event, id int64, manager model.Manager) (out []model.Event, e model.Event, changed bool, err error) {
	idx, err := ownedEvent(events, id, manager)
	if err != nil {
		return nil, model.Event{}, false, err
	}

	if !events[idx].IsRecruiting() {
		return events, events[idx], false, nil
	}

	out = slices.Clone(events)
	out[idx].Recruiting = model.Bool(false)
	return out, out[idx], true, nil
}

// DeleteEvent removes the event and every application that references it.
func DeleteEvent(events []model.Event, apps []model.Application, id int64, manager model.Manager) ([]model.Event, []model.Application, int, error) {
	idx, err := ownedEvent(events, id, manager)
	if err != nil {
		return nil, nil, 0, err
	}

	outEvents := slices.Delete(slices.Clone(events), idx, idx+1)

	outApps := make([]model.Application, 0, len(apps))
	for _, a := range apps {
		if a.EventID != id {
			outApps = append(outApps, a)
		}
	}
	return outEvents, outApps, len(apps) - len(outApps), nil
}
