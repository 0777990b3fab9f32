package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

const (
	// DefaultSeriesLength applies to rules without COUNT or UNTIL
	DefaultSeriesLength = 12
	// MaxSeriesLength bounds the number of events a single rule may create
	MaxSeriesLength = 52
)

// CreateEventSeries creates one event per occurrence of rule, the first on
// in.StartDate. Every occurrence keeps the duration of in and is validated
// like a single event; the first failure aborts the whole series.
func CreateEventSeries(events []model.Event, in EventInput, rule string, manager model.Manager, now time.Time) ([]model.Event, []model.Event, error) {
	if err := validateEventInput(&in, now); err != nil {
		return nil, nil, err
	}

	start, _ := parseDate(in.StartDate, now.Location())
	startUTC, _ := parseDate(in.StartDate, time.UTC)
	endUTC, _ := parseDate(in.EndDate, time.UTC)
	durationDays := int(endUTC.Sub(startUTC).Hours() / 24)

	occurrences, err := expandRule(rule, start)
	if err != nil {
		return nil, nil, err
	}

	out := events
	created := make([]model.Event, 0, len(occurrences))
	for i, occ := range occurrences {
		occIn := in
		occIn.StartDate = occ.Format(DateLayout)
		occIn.EndDate = occ.AddDate(0, 0, durationDays).Format(DateLayout)
		occIn.Tags = append([]string(nil), in.Tags...)

		var e model.Event
		out, e, err = CreateEvent(out, occIn, manager, now)
		if err != nil {
			return nil, nil, fmt.Errorf("occurrence %d (%s): %w", i+1, occIn.StartDate, err)
		}
		created = append(created, e)
	}

	return out, created, nil
}

// expandRule returns the occurrence dates of an RFC 5545 RRULE starting at dtstart
func expandRule(rule string, dtstart time.Time) ([]time.Time, error) {
	rule = strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:")
	if rule == "" {
		return nil, invalid(ErrInvalidRule, FieldError{Field: "rrule", Message: "this field is required"})
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, invalid(ErrInvalidRule, FieldError{Field: "rrule", Message: err.Error()})
	}
	opt.Dtstart = dtstart
	if opt.Count == 0 && opt.Until.IsZero() {
		opt.Count = DefaultSeriesLength
	}
	if opt.Count > MaxSeriesLength {
		return nil, errTooManyOccurrences()
	}

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, invalid(ErrInvalidRule, FieldError{Field: "rrule", Message: err.Error()})
	}

	// UNTIL rules are bounded by date only, so cap them here
	var occurrences []time.Time
	iter := r.Iterator()
	for next, ok := iter(); ok; next, ok = iter() {
		if len(occurrences) == MaxSeriesLength {
			return nil, errTooManyOccurrences()
		}
		occurrences = append(occurrences, next)
	}
	if len(occurrences) == 0 {
		return nil, invalid(ErrInvalidRule, FieldError{Field: "rrule", Message: "rule has no occurrences"})
	}

	// dtstart is always the first occurrence and counts towards COUNT,
	// even when it does not match the rule's BYxxx parts
	if !occurrences[0].Equal(dtstart) {
		occurrences = append([]time.Time{dtstart}, occurrences...)
		if opt.Count > 0 && len(occurrences) > opt.Count {
			occurrences = occurrences[:opt.Count]
		}
		if len(occurrences) > MaxSeriesLength {
			return nil, errTooManyOccurrences()
		}
	}
	return occurrences, nil
}

func errTooManyOccurrences() error {
	return invalid(ErrInvalidRule, FieldError{
		Field:   "rrule",
		Message: fmt.Sprintf("at most %d occurrences allowed", MaxSeriesLength),
	})
}
