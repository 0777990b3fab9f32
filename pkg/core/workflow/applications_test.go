package workflow

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// stubApplicationIDs makes NewApplicationID deterministic for one test
func stubApplicationIDs(t *testing.T) {
	t.Helper()
	orig := NewApplicationID
	n := 0
	NewApplicationID = func() string {
		n++
		return fmt.Sprintf("app-%d", n)
	}
	t.Cleanup(func() { NewApplicationID = orig })
}

func countPair(apps []model.Application, eventID int64, applicant string) int {
	n := 0
	for _, a := range apps {
		if a.EventID == eventID && a.Applicant == applicant {
			n++
		}
	}
	return n
}

func TestApply_Success(t *testing.T) {
	stubApplicationIDs(t)
	mgr := testManager("m@example.com")
	_, event, err := CreateEvent(nil, beachCleanup(), mgr, testNow)
	require.NoError(t, err)
	vol := testVolunteer("v@example.com")

	out, app, err := Apply(nil, event, vol, testNow)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, model.Application{
		ID:            "app-1",
		EventID:       event.ID,
		Title:         "Beach Cleanup",
		Status:        model.StatusPending,
		VolunteerType: model.VolunteerTypeStudent,
		Applicant:     "v@example.com",
		Organizer:     "m@example.com",
		DateApplied:   "2025-02-10T15:30:00Z",
	}, app)
}

func TestApply_DuplicatePending(t *testing.T) {
	event := model.Event{ID: 1, Title: "E", CreatedBy: "m@example.com"}
	vol := testVolunteer("v@example.com")

	apps, _, err := Apply(nil, event, vol, testNow)
	require.NoError(t, err)

	out, _, err := Apply(apps, event, vol, testNow)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, IsConflict(err))
	assert.ErrorIs(t, err, ErrPendingExists)
}

func TestApply_ReapplyAfterRejection(t *testing.T) {
	stubApplicationIDs(t)
	mgr := testManager("m@example.com")
	event := model.Event{ID: 1, Title: "E", CreatedBy: mgr.Email}
	vol := testVolunteer("v@example.com")
	other := model.Application{ID: "keep", EventID: 2, Applicant: vol.Email, Status: model.StatusPending}

	apps, _, err := Apply([]model.Application{other}, event, vol, testNow)
	require.NoError(t, err)
	apps, _, err = UpdateStatus(apps, event.ID, vol.Email, model.StatusRejected, mgr)
	require.NoError(t, err)

	apps, app, err := Apply(apps, event, vol, testNow.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, app.Status)
	assert.Equal(t, "app-2", app.ID)
	assert.Equal(t, "2025-02-11T15:30:00Z", app.DateApplied)
	assert.Equal(t, 1, countPair(apps, event.ID, vol.Email))
	assert.Len(t, apps, 2)
	assert.Equal(t, other, apps[0])
}

func TestApply_AlreadyAccepted(t *testing.T) {
	event := model.Event{ID: 1, CreatedBy: "m@example.com"}
	apps := []model.Application{{EventID: 1, Applicant: "v@example.com", Status: model.StatusAccepted}}

	_, _, err := Apply(apps, event, testVolunteer("v@example.com"), testNow)
	assert.True(t, IsConflict(err))
	assert.ErrorIs(t, err, ErrAccepted)
}

func TestApply_NotRecruiting(t *testing.T) {
	event := model.Event{ID: 1, CreatedBy: "m@example.com", Recruiting: model.Bool(false)}
	vol := testVolunteer("v@example.com")

	_, _, err := Apply(nil, event, vol, testNow)
	assert.True(t, IsConflict(err))
	assert.ErrorIs(t, err, ErrNotRecruiting)

	rejected := []model.Application{{EventID: 1, Applicant: vol.Email, Status: model.StatusRejected}}
	_, _, err = Apply(rejected, event, vol, testNow)
	assert.ErrorIs(t, err, ErrNotRecruiting)
}

func TestApply_PendingReportedBeforeClosed(t *testing.T) {
	event := model.Event{ID: 1, CreatedBy: "m@example.com", Recruiting: model.Bool(false)}
	apps := []model.Application{{EventID: 1, Applicant: "v@example.com", Status: model.StatusPending}}

	_, _, err := Apply(apps, event, testVolunteer("v@example.com"), testNow)
	assert.ErrorIs(t, err, ErrPendingExists)
}

func TestApply_UnsetRecruitingIsOpen(t *testing.T) {
	event := model.Event{ID: 1, CreatedBy: "m@example.com"}

	_, _, err := Apply(nil, event, testVolunteer("v@example.com"), testNow)
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	mgr := testManager("m@example.com")
	base := []model.Application{
		{EventID: 1, Applicant: "v@example.com", Organizer: mgr.Email, Status: model.StatusPending},
		{EventID: 1, Applicant: "w@example.com", Organizer: mgr.Email, Status: model.StatusAccepted},
		{EventID: 2, Applicant: "v@example.com", Organizer: "other@example.com", Status: model.StatusPending},
	}

	t.Run("accept", func(t *testing.T) {
		out, app, err := UpdateStatus(base, 1, "v@example.com", model.StatusAccepted, mgr)
		require.NoError(t, err)
		assert.Equal(t, model.StatusAccepted, app.Status)
		assert.Equal(t, model.StatusAccepted, out[0].Status)
		assert.Equal(t, model.StatusPending, base[0].Status)
	})

	t.Run("reject", func(t *testing.T) {
		_, app, err := UpdateStatus(base, 1, "v@example.com", model.StatusRejected, mgr)
		require.NoError(t, err)
		assert.Equal(t, model.StatusRejected, app.Status)
	})

	t.Run("pending is not a decision", func(t *testing.T) {
		_, _, err := UpdateStatus(base, 1, "v@example.com", model.StatusPending, mgr)
		assert.True(t, IsValidation(err))
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, _, err := UpdateStatus(base, 1, "v@example.com", "approved", mgr)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("missing application", func(t *testing.T) {
		_, _, err := UpdateStatus(base, 3, "v@example.com", model.StatusAccepted, mgr)
		assert.True(t, IsNotFound(err))
		assert.ErrorIs(t, err, ErrApplicationNotFound)
	})

	t.Run("another organizer", func(t *testing.T) {
		_, _, err := UpdateStatus(base, 2, "v@example.com", model.StatusAccepted, mgr)
		assert.True(t, IsForbidden(err))
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("already decided", func(t *testing.T) {
		_, _, err := UpdateStatus(base, 1, "w@example.com", model.StatusRejected, mgr)
		assert.True(t, IsConflict(err))
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestApplicationWorkflow_EditKeepsStatus(t *testing.T) {
	stubApplicationIDs(t)
	mgr := testManager("m@example.com")
	vol := testVolunteer("v@example.com")

	events, event, err := CreateEvent(nil, beachCleanup(), mgr, testNow)
	require.NoError(t, err)
	apps, _, err := Apply(nil, event, vol, testNow)
	require.NoError(t, err)
	apps, _, err = UpdateStatus(apps, event.ID, vol.Email, model.StatusAccepted, mgr)
	require.NoError(t, err)

	in := beachCleanup()
	in.Title = "Beach Cleanup (rescheduled)"
	events, _, err = UpdateEvent(events, event.ID, in, mgr, testNow)
	require.NoError(t, err)

	app, ok := FindApplication(apps, event.ID, vol.Email)
	require.True(t, ok)
	assert.Equal(t, model.StatusAccepted, app.Status)
	assert.Equal(t, "Beach Cleanup", app.Title, "copied title is not refreshed")
	assert.Equal(t, "Beach Cleanup (rescheduled)", events[0].Title)
	assert.Equal(t, []model.Application{app}, VolunteerHistory(apps, vol.Email))
}

func TestApplicationQueries(t *testing.T) {
	apps := []model.Application{
		{EventID: 1, Title: "Beach Cleanup", Applicant: "v@example.com", Organizer: "m@example.com", Status: model.StatusPending},
		{EventID: 2, Title: "Food Drive", Applicant: "v@example.com", Organizer: "m@example.com", Status: model.StatusAccepted},
		{EventID: 1, Title: "Beach Cleanup", Applicant: "w@example.com", Organizer: "m@example.com", Status: model.StatusPending},
		{EventID: 3, Title: "Homework Club", Applicant: "v@example.com", Organizer: "n@example.com", Status: model.StatusRejected},
	}

	t.Run("manager sees own events only", func(t *testing.T) {
		got := ManagerApplications(apps, "m@example.com", "", "")
		assert.Len(t, got, 3)
	})

	t.Run("manager status filter", func(t *testing.T) {
		got := ManagerApplications(apps, "m@example.com", model.StatusPending, "")
		assert.Len(t, got, 2)
	})

	t.Run("manager search by applicant", func(t *testing.T) {
		got := ManagerApplications(apps, "m@example.com", "", "W@EXAMPLE")
		require.Len(t, got, 1)
		assert.Equal(t, "w@example.com", got[0].Applicant)
	})

	t.Run("volunteer sees own applications", func(t *testing.T) {
		got := VolunteerApplications(apps, "v@example.com", "")
		assert.Len(t, got, 3)

		got = VolunteerApplications(apps, "v@example.com", "food")
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].EventID)
	})

	t.Run("history is accepted only", func(t *testing.T) {
		got := VolunteerHistory(apps, "v@example.com")
		require.Len(t, got, 1)
		assert.Equal(t, "Food Drive", got[0].Title)
		assert.Empty(t, VolunteerHistory(apps, "w@example.com"))
	})

	t.Run("pending count", func(t *testing.T) {
		assert.Equal(t, 2, PendingCount(apps, "m@example.com"))
		assert.Equal(t, 0, PendingCount(apps, "n@example.com"))
	})
}
