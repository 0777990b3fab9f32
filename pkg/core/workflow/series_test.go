package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventSeries_Weekly(t *testing.T) {
	mgr := testManager("m@example.com")

	out, created, err := CreateEventSeries(nil, beachCleanup(), "FREQ=WEEKLY;COUNT=4", mgr, testNow)
	require.NoError(t, err)
	require.Len(t, created, 4)
	assert.Equal(t, created, out)

	wantStarts := []string{"2025-02-20", "2025-02-27", "2025-03-06", "2025-03-13"}
	wantEnds := []string{"2025-02-21", "2025-02-28", "2025-03-07", "2025-03-14"}
	ids := map[int64]bool{}
	for i, e := range created {
		assert.Equal(t, wantStarts[i], e.StartDate)
		assert.Equal(t, wantEnds[i], e.EndDate)
		assert.Equal(t, "Beach Cleanup", e.Title)
		assert.Equal(t, mgr.Email, e.CreatedBy)
		assert.True(t, e.IsRecruiting())
		ids[e.ID] = true
	}
	assert.Len(t, ids, 4, "ids must be unique")
}

func TestCreateEventSeries_RRulePrefixAndDefaultCount(t *testing.T) {
	_, created, err := CreateEventSeries(nil, beachCleanup(), "RRULE:FREQ=DAILY", testManager("m@example.com"), testNow)
	require.NoError(t, err)
	assert.Len(t, created, DefaultSeriesLength)
	assert.Equal(t, "2025-02-20", created[0].StartDate)
	assert.Equal(t, "2025-02-21", created[1].StartDate)
}

func TestCreateEventSeries_Until(t *testing.T) {
	_, created, err := CreateEventSeries(nil, beachCleanup(), "FREQ=DAILY;UNTIL=20250223T000000Z", testManager("m@example.com"), testNow)
	require.NoError(t, err)
	require.Len(t, created, 4)
	assert.Equal(t, "2025-02-23", created[3].StartDate)
}

func TestCreateEventSeries_StartDateOffRule(t *testing.T) {
	// 2025-02-20 is a Thursday
	_, created, err := CreateEventSeries(nil, beachCleanup(), "FREQ=WEEKLY;BYDAY=MO;COUNT=2", testManager("m@example.com"), testNow)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "2025-02-20", created[0].StartDate)
	assert.Equal(t, "2025-02-21", created[0].EndDate)
	assert.Equal(t, "2025-02-24", created[1].StartDate)

	_, created, err = CreateEventSeries(nil, beachCleanup(), "FREQ=WEEKLY;BYDAY=MO;UNTIL=20250304T000000Z", testManager("m@example.com"), testNow)
	require.NoError(t, err)
	starts := make([]string, 0, len(created))
	for _, e := range created {
		starts = append(starts, e.StartDate)
	}
	assert.Equal(t, []string{"2025-02-20", "2025-02-24", "2025-03-03"}, starts)
}

func TestCreateEventSeries_AppendsToExisting(t *testing.T) {
	mgr := testManager("m@example.com")
	events, first, err := CreateEvent(nil, beachCleanup(), mgr, testNow)
	require.NoError(t, err)

	out, created, err := CreateEventSeries(events, beachCleanup(), "FREQ=MONTHLY;COUNT=2", mgr, testNow)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, first, out[0])
	for _, e := range created {
		assert.NotEqual(t, first.ID, e.ID)
	}
	assert.Len(t, events, 1)
}

func TestCreateEventSeries_InvalidRules(t *testing.T) {
	tests := []struct {
		name string
		rule string
	}{
		{name: "empty", rule: ""},
		{name: "unknown frequency", rule: "FREQ=SOMETIMES"},
		{name: "garbage", rule: "every tuesday"},
		{name: "too many occurrences", rule: "FREQ=DAILY;COUNT=100"},
		{name: "until beyond cap", rule: "FREQ=DAILY;UNTIL=20260101T000000Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, created, err := CreateEventSeries(nil, beachCleanup(), tt.rule, testManager("m@example.com"), testNow)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Nil(t, created)
			assert.True(t, IsValidation(err))
			assert.ErrorIs(t, err, ErrInvalidRule)
		})
	}
}

func TestCreateEventSeries_ValidatesTemplate(t *testing.T) {
	in := beachCleanup()
	in.StartDate = "2025-01-01"

	_, _, err := CreateEventSeries(nil, in, "FREQ=WEEKLY;COUNT=2", testManager("m@example.com"), testNow)
	assert.ErrorIs(t, err, ErrStartInPast)
}
