package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

func TestCreateEvent_Success(t *testing.T) {
	mgr := testManager("m@example.com")
	in := beachCleanup()
	in.Tags = []string{"Cleanup", " Manual Labor ", "Cleanup"}

	out, e, err := CreateEvent(nil, in, mgr, testNow)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, testNow.UnixMilli(), e.ID)
	assert.Equal(t, "Beach Cleanup", e.Title)
	assert.Equal(t, "2025-02-20", e.StartDate)
	assert.Equal(t, "2025-02-21", e.EndDate)
	assert.Equal(t, 20, e.Volunteers)
	assert.Equal(t, "m@example.com", e.CreatedBy)
	assert.Equal(t, []string{"Cleanup", "Manual Labor"}, e.Tags)
	require.NotNil(t, e.Recruiting)
	assert.True(t, *e.Recruiting)
}

func TestCreateEvent_IDBumpedWhenTaken(t *testing.T) {
	mgr := testManager("m@example.com")
	events := []model.Event{{ID: testNow.UnixMilli()}, {ID: testNow.UnixMilli() + 1}}

	_, e, err := CreateEvent(events, beachCleanup(), mgr, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.UnixMilli()+2, e.ID)
}

func TestCreateEvent_StartToday(t *testing.T) {
	in := beachCleanup()
	in.StartDate = "2025-02-10"

	_, _, err := CreateEvent(nil, in, testManager("m@example.com"), testNow)
	assert.NoError(t, err)
}

func TestCreateEvent_SingleDay(t *testing.T) {
	in := beachCleanup()
	in.EndDate = in.StartDate

	_, _, err := CreateEvent(nil, in, testManager("m@example.com"), testNow)
	assert.NoError(t, err)
}

func TestCreateEvent_StartInPast(t *testing.T) {
	events := []model.Event{{ID: 1}}
	in := beachCleanup()
	in.StartDate = "2025-02-09"

	out, _, err := CreateEvent(events, in, testManager("m@example.com"), testNow)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, ErrStartInPast)
	assert.Len(t, events, 1)
}

func TestCreateEvent_TodayUsesNowLocation(t *testing.T) {
	// 20:00 UTC on the 10th is already the 11th at UTC+11
	loc := time.FixedZone("UTC+11", 11*3600)
	now := time.Date(2025, time.February, 10, 20, 0, 0, 0, time.UTC).In(loc)

	in := beachCleanup()
	in.StartDate = "2025-02-10"
	_, _, err := CreateEvent(nil, in, testManager("m@example.com"), now)
	assert.ErrorIs(t, err, ErrStartInPast)

	in.StartDate = "2025-02-11"
	_, _, err = CreateEvent(nil, in, testManager("m@example.com"), now)
	assert.NoError(t, err)
}

func TestCreateEvent_EndBeforeStart(t *testing.T) {
	in := beachCleanup()
	in.EndDate = "2025-02-19"

	_, _, err := CreateEvent(nil, in, testManager("m@example.com"), testNow)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.ErrorIs(t, err, ErrEndBeforeStart)
}

func TestCreateEvent_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(in *EventInput)
		wantErr   error
		wantField string
	}{
		{name: "missing title", mutate: func(in *EventInput) { in.Title = "  " }, wantErr: ErrMissingFields, wantField: "title"},
		{name: "missing description", mutate: func(in *EventInput) { in.Description = "" }, wantErr: ErrMissingFields, wantField: "description"},
		{name: "missing start", mutate: func(in *EventInput) { in.StartDate = "" }, wantErr: ErrMissingFields, wantField: "startDate"},
		{name: "zero capacity", mutate: func(in *EventInput) { in.Volunteers = 0 }, wantErr: ErrMissingFields, wantField: "volunteers"},
		{name: "negative capacity", mutate: func(in *EventInput) { in.Volunteers = -3 }, wantErr: ErrInvalidInput, wantField: "volunteers"},
		{name: "bad date format", mutate: func(in *EventInput) { in.EndDate = "21/02/2025" }, wantErr: ErrInvalidInput, wantField: "endDate"},
		{name: "line break in title", mutate: func(in *EventInput) { in.Title = "Cleanup\r\nBcc: x@example.com" }, wantErr: ErrInvalidInput, wantField: "title"},
		{name: "unknown tag", mutate: func(in *EventInput) { in.Tags = []string{"Juggling"} }, wantErr: ErrInvalidInput, wantField: "tags[0]"},
		{
			name: "too many tags",
			mutate: func(in *EventInput) {
				in.Tags = []string{"Teaching", "Cleanup", "Logistics", "Mentoring"}
			},
			wantErr:   ErrInvalidInput,
			wantField: "tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := beachCleanup()
			tt.mutate(&in)

			out, _, err := CreateEvent(nil, in, testManager("m@example.com"), testNow)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, IsValidation(err))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, fieldNames(err), tt.wantField)
		})
	}
}

func TestUpdateEvent_KeepsIdentityAndRecruiting(t *testing.T) {
	mgr := testManager("m@example.com")
	events, e, err := CreateEvent(nil, beachCleanup(), mgr, testNow)
	require.NoError(t, err)
	events, _, _, err = EndRecruiting(events, e.ID, mgr)
	require.NoError(t, err)

	in := beachCleanup()
	in.Title = "Lake Cleanup"
	in.Volunteers = 4
	out, updated, err := UpdateEvent(events, e.ID, in, mgr, testNow.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, e.ID, updated.ID)
	assert.Equal(t, "m@example.com", updated.CreatedBy)
	assert.Equal(t, "Lake Cleanup", updated.Title)
	assert.Equal(t, 4, updated.Volunteers)
	assert.False(t, updated.IsRecruiting())
	assert.Equal(t, updated, out[0])
	assert.Equal(t, "Beach Cleanup", events[0].Title)
}

func TestUpdateEvent_UnsetRecruitingStaysOpen(t *testing.T) {
	mgr := testManager("m@example.com")
	events := []model.Event{{ID: 7, Title: "Old", CreatedBy: mgr.Email}}

	_, updated, err := UpdateEvent(events, 7, beachCleanup(), mgr, testNow)
	require.NoError(t, err)
	require.NotNil(t, updated.Recruiting)
	assert.True(t, *updated.Recruiting)
}

func TestUpdateEvent_Errors(t *testing.T) {
	owner := testManager("owner@example.com")
	events, e, err := CreateEvent(nil, beachCleanup(), owner, testNow)
	require.NoError(t, err)

	_, _, err = UpdateEvent(events, e.ID, beachCleanup(), testManager("other@example.com"), testNow)
	assert.True(t, IsForbidden(err))
	assert.ErrorIs(t, err, ErrNotOwner)

	_, _, err = UpdateEvent(events, 42, beachCleanup(), owner, testNow)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, ErrEventNotFound)

	in := beachCleanup()
	in.StartDate = "2025-01-01"
	_, _, err = UpdateEvent(events, e.ID, in, owner, testNow)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestEndRecruiting_Idempotent(t *testing.T) {
	mgr := testManager("m@example.com")
	events, e, err := CreateEvent(nil, beachCleanup(), mgr, testNow)
	require.NoError(t, err)

	closed, ce, changed, err := EndRecruiting(events, e.ID, mgr)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, ce.IsRecruiting())
	assert.True(t, events[0].IsRecruiting(), "input collection must not change")

	again, ae, changed, err := EndRecruiting(closed, e.ID, mgr)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, ae.IsRecruiting())
	assert.Equal(t, closed, again)
}

func TestEndRecruiting_NotOwner(t *testing.T) {
	events := []model.Event{{ID: 1, CreatedBy: "owner@example.com"}}

	_, _, _, err := EndRecruiting(events, 1, testManager("other@example.com"))
	assert.True(t, IsForbidden(err))
}

func TestDeleteEvent_CascadesApplications(t *testing.T) {
	mgr := testManager("m@example.com")
	events := []model.Event{
		{ID: 1, Title: "One", CreatedBy: mgr.Email},
		{ID: 2, Title: "Two", CreatedBy: mgr.Email},
	}
	apps := []model.Application{
		{EventID: 1, Applicant: "a@example.com", Status: model.StatusPending},
		{EventID: 2, Applicant: "a@example.com", Status: model.StatusAccepted},
		{EventID: 1, Applicant: "b@example.com", Status: model.StatusRejected},
	}

	outEvents, outApps, removed, err := DeleteEvent(events, apps, 1, mgr)
	require.NoError(t, err)

	assert.Equal(t, 2, removed)
	require.Len(t, outEvents, 1)
	assert.Equal(t, int64(2), outEvents[0].ID)
	require.Len(t, outApps, 1)
	assert.Equal(t, int64(2), outApps[0].EventID)
	assert.Len(t, events, 2)
	assert.Len(t, apps, 3)
}

func TestDeleteEvent_Errors(t *testing.T) {
	events := []model.Event{{ID: 1, CreatedBy: "owner@example.com"}}

	_, _, _, err := DeleteEvent(events, nil, 1, testManager("other@example.com"))
	assert.True(t, IsForbidden(err))

	_, _, _, err = DeleteEvent(events, nil, 2, testManager("owner@example.com"))
	assert.True(t, IsNotFound(err))
}
