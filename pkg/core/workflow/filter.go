package workflow

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// CapacityThreshold separates high-need events from small teams
const CapacityThreshold = 5

// Need filters events by capacity relative to CapacityThreshold
type Need string

const (
	NeedAll  Need = ""
	NeedHigh Need = "high" // volunteers > CapacityThreshold
	NeedLow  Need = "low"  // volunteers <= CapacityThreshold
)

// ParseNeed accepts the names used by both dashboards
func ParseNeed(s string) (Need, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return NeedAll, nil
	case "high", "high-need", "urgent":
		return NeedHigh, nil
	case "low", "low-need", "small-team":
		return NeedLow, nil
	}
	return NeedAll, fmt.Errorf("unknown need filter %q (want all, high or low)", s)
}

func (n Need) matches(volunteers int) bool {
	switch n {
	case NeedHigh:
		return volunteers > CapacityThreshold
	case NeedLow:
		return volunteers <= CapacityThreshold
	}
	return true
}

// EventFilter selects events. Empty fields match everything; set fields are ANDed.
type EventFilter struct {
	Search    string // case-insensitive substring of title or description
	Need      Need
	Tag       string
	CreatedBy string
}

// Matches reports whether e passes every set criterion
func (f EventFilter) Matches(e model.Event) bool {
	if f.CreatedBy != "" && e.CreatedBy != f.CreatedBy {
		return false
	}
	if f.Search != "" && !containsFold(e.Title, f.Search) && !containsFold(e.Description, f.Search) {
		return false
	}
	if !f.Need.matches(e.Volunteers) {
		return false
	}
	if f.Tag != "" && !e.HasTag(f.Tag) {
		return false
	}
	return true
}

// FilterEvents returns the events matching f, in order
func FilterEvents(events []model.Event, f EventFilter) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// VisibleToVolunteer keeps the events a volunteer may see: those still
// recruiting, plus closed ones the volunteer has been accepted to.
func VisibleToVolunteer(events []model.Event, apps []model.Application, volunteerEmail string) []model.Event {
	accepted := make(map[int64]bool)
	for _, a := range apps {
		if a.Applicant == volunteerEmail && a.Status == model.StatusAccepted {
			accepted[a.EventID] = true
		}
	}

	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.IsRecruiting() || accepted[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

// containsFold reports whether substr is within s under Unicode case folding
func containsFold(s, substr string) bool {
	folder := cases.Fold()
	return strings.Contains(folder.String(s), folder.String(substr))
}
