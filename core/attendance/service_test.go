package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/attendance"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
	sqlxrepos "github.com/httpspriya/GVP-AI-Hackathon-2026/storage/database/sqlx"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/tests"
)

var (
	// Wednesday
	now = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

	friday = core.NewDate(2025, time.January, 10)
	sunday = core.NewDate(2025, time.January, 12)
)

type fixture struct {
	db      *sqlx.DB
	svc     *attendance.Service
	repo    attendance.Repository
	stuRepo student.Repository
}

func setup(t *testing.T, wrap ...func(attendance.Repository) attendance.Repository) fixture {
	db := testutil.PrepareDB(t)
	f := fixture{
		db:      db,
		repo:    sqlxrepos.NewAttendanceRepository(db),
		stuRepo: sqlxrepos.NewStudentRepository(db),
	}
	repo := f.repo
	for _, w := range wrap {
		repo = w(repo)
	}
	f.svc = attendance.NewServiceWithOptions(db, repo, f.stuRepo, nil, attendance.Options{
		Location:      time.UTC,
		ClosedWeekday: time.Sunday,
		Now:           func() time.Time { return now },
	})
	return f
}

func (f fixture) apply(t *testing.T, date core.Date, statuses map[int]attendance.Status) attendance.Result {
	t.Helper()
	res, err := f.svc.ApplyDay(context.Background(), date, statuses)
	require.NoError(t, err)
	require.True(t, res.Applied, "rejected: %s", res.Reason)
	return res
}

func (f fixture) counters(t *testing.T, stu student.Student) attendance.Tally {
	t.Helper()
	fresh := testutil.ReloadStudent(t, f.stuRepo, stu)
	return attendance.Tally{Attended: fresh.TotalAttendance, Classes: fresh.TotalClasses}
}

func TestService_Today(t *testing.T) {
	f := setup(t)
	assert.Equal(t, core.NewDate(2025, time.January, 15), f.svc.Today())

	// the calendar day follows the configured location
	tokyo := time.FixedZone("JST", 9*3600)
	svc := attendance.NewServiceWithOptions(f.db, f.repo, f.stuRepo, nil, attendance.Options{
		Location: tokyo,
		Now:      func() time.Time { return time.Date(2025, time.January, 15, 20, 0, 0, 0, time.UTC) },
	})
	assert.Equal(t, core.NewDate(2025, time.January, 16), svc.Today())
}

func TestService_ApplyDay_edit(t *testing.T) {
	f := setup(t)
	ada := testutil.CreateStudent(t, f.stuRepo, "CS101", "Ada", 1)
	bob := testutil.CreateStudent(t, f.stuRepo, "CS102", "Bob", 1)

	// Mon-Thu: Ada present 3 times out of 4
	for i, present := range []bool{true, true, false, true} {
		status := attendance.StatusAbsent
		if present {
			status = attendance.StatusPresent
		}
		f.apply(t, core.NewDate(2025, time.January, 6+i), map[int]attendance.Status{ada.ID: status})
	}
	assert.Equal(t, attendance.Tally{Attended: 3, Classes: 4}, f.counters(t, ada))
	assert.Equal(t, attendance.Tally{Attended: 0, Classes: 4}, f.counters(t, bob))

	res := f.apply(t, friday, map[int]attendance.Status{ada.ID: attendance.StatusPresent, bob.ID: attendance.StatusPresent})
	assert.Equal(t, attendance.Result{Date: friday, Applied: true, Marked: 2, Present: 2}, res)
	assert.Equal(t, attendance.Tally{Attended: 4, Classes: 5}, f.counters(t, ada))
	assert.Equal(t, attendance.Tally{Attended: 1, Classes: 5}, f.counters(t, bob))

	// editing replaces the day: Ada's presence is reverted
	res = f.apply(t, friday, map[int]attendance.Status{ada.ID: attendance.StatusAbsent, bob.ID: attendance.StatusPresent})
	assert.Equal(t, attendance.Result{Date: friday, Applied: true, Edited: true, Marked: 2, Present: 1}, res)
	assert.Equal(t, attendance.Tally{Attended: 3, Classes: 5}, f.counters(t, ada))
	assert.Equal(t, attendance.Tally{Attended: 1, Classes: 5}, f.counters(t, bob))

	day, err := f.svc.GetDay(context.Background(), friday)
	require.NoError(t, err)
	assert.Equal(t, attendance.DaySheet{
		Date:     friday,
		Taken:    true,
		Statuses: map[int]attendance.Status{ada.ID: attendance.StatusAbsent, bob.ID: attendance.StatusPresent},
	}, day)
}

func TestService_ApplyDay_idempotent(t *testing.T) {
	f := setup(t)
	ada := testutil.CreateStudent(t, f.stuRepo, "CS101", "Ada", 1)
	bob := testutil.CreateStudent(t, f.stuRepo, "CS102", "Bob", 1)
	statuses := map[int]attendance.Status{ada.ID: attendance.StatusPresent}

	for i := 0; i < 3; i++ {
		f.apply(t, friday, statuses)
	}
	assert.Equal(t, attendance.Tally{Attended: 1, Classes: 1}, f.counters(t, ada))
	assert.Equal(t, attendance.Tally{Attended: 0, Classes: 1}, f.counters(t, bob))

	records, err := f.repo.QueryRecordsByDate(context.Background(), friday)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestService_ApplyDay_rejected(t *testing.T) {
	f := setup(t)
	ada := testutil.CreateStudent(t, f.stuRepo, "CS101", "Ada", 1)
	statuses := map[int]attendance.Status{ada.ID: attendance.StatusPresent}

	tests := []struct {
		name       string
		date       core.Date
		wantReason attendance.RejectReason
	}{
		{name: "closed weekday", date: sunday, wantReason: attendance.ReasonNonAttendanceDay},
		{name: "tomorrow", date: core.NewDate(2025, time.January, 16), wantReason: attendance.ReasonFutureDate},
		// future is checked first
		{name: "future sunday", date: core.NewDate(2025, time.January, 19), wantReason: attendance.ReasonFutureDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.svc.ApplyDay(context.Background(), tt.date, statuses)
			require.NoError(t, err)
			assert.False(t, res.Applied)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.NotEmpty(t, res.Reason.Message())
		})
	}

	assert.Equal(t, attendance.Tally{}, f.counters(t, ada))
	records, err := f.repo.QueryRecordsBetween(context.Background(), friday, core.NewDate(2025, time.January, 31))
	require.NoError(t, err)
	assert.Empty(t, records)

	// today is allowed
	f.apply(t, f.svc.Today(), statuses)
}

func TestService_ApplyDay_unknownStudent(t *testing.T) {
	f := setup(t)
	ada := testutil.CreateStudent(t, f.stuRepo, "CS101", "Ada", 1)
	f.apply(t, friday, map[int]attendance.Status{ada.ID: attendance.StatusPresent})

	res, err := f.svc.ApplyDay(context.Background(), friday, map[int]attendance.Status{
		ada.ID:       attendance.StatusAbsent,
		ada.ID + 100: attendance.StatusPresent,
	})
	assert.IsType(t, &core.ValidationError{}, err)
	assert.False(t, res.Applied)

	// unchanged
	assert.Equal(t, attendance.Tally{Attended: 1, Classes: 1}, f.counters(t, ada))
	day, err := f.svc.GetDay(context.Background(), friday)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, day.Statuses[ada.ID])
}

type failingRepo struct {
	attendance.Repository
}

var errBoom = errors.New("boom")

func (r failingRepo) ApplyCounterDeltas(context.Context, map[int]attendance.Tally, ...core.DBExecutor) error {
	return errBoom
}

func TestService_ApplyDay_rollback(t *testing.T) {
	f := setup(t)
	ada := testutil.CreateStudent(t, f.stuRepo, "CS101", "Ada", 1)
	f.apply(t, friday, map[int]attendance.Status{ada.ID: attendance.StatusPresent})

	failing := attendance.NewServiceWithOptions(f.db, failingRepo{f.repo}, f.stuRepo, nil, attendance.Options{
		Location:      time.UTC,
		ClosedWeekday: time.Sunday,
		Now:           func() time.Time { return now },
	})
	_, err := failing.ApplyDay(context.Background(), friday, map[int]attendance.Status{ada.ID: attendance.StatusAbsent})
	assert.Equal(t, errBoom, errors.Cause(err))

	// the deleted & re-inserted records were rolled back along with the counters
	assert.Equal(t, attendance.Tally{Attended: 1, Classes: 1}, f.counters(t, ada))
	day, err := f.svc.GetDay(context.Background(), friday)
	require.NoError(t, err)
	assert.Equal(t, map[int]attendance.Status{ada.ID: attendance.StatusPresent}, day.Statuses)
}

func TestService_ApplyDay_emptyRoster(t *testing.T) {
	f := setup(t)
	ada := testutil.CreateStudent(t, f.stuRepo, "CS101", "Ada", 1)
	f.apply(t, friday, map[int]attendance.Status{ada.ID: attendance.StatusPresent})

	ctx := context.Background()
	require.NoError(t, core.WithTx(ctx, f.db, func(tx core.DBExecutor) error {
		return f.stuRepo.DeleteStudent(ctx, ada.ID, tx)
	}))

	res := f.apply(t, friday, nil)
	assert.Equal(t, attendance.Result{Date: friday, Applied: true, Marked: 0}, res)

	day, err := f.svc.GetDay(ctx, friday)
	require.NoError(t, err)
	assert.False(t, day.Taken)
}

func TestService_deleteCascade(t *testing.T) {
	f := setup(t)
	ada := testutil.CreateStudent(t, f.stuRepo, "CS101", "Ada", 1)
	bob := testutil.CreateStudent(t, f.stuRepo, "CS102", "Bob", 1)
	f.apply(t, friday, map[int]attendance.Status{ada.ID: attendance.StatusPresent, bob.ID: attendance.StatusPresent})
	f.apply(t, friday.AddDays(-1), map[int]attendance.Status{bob.ID: attendance.StatusPresent})

	ctx := context.Background()
	require.NoError(t, core.WithTx(ctx, f.db, func(tx core.DBExecutor) error {
		return f.stuRepo.DeleteStudent(ctx, ada.ID, tx)
	}))

	records, err := f.svc.RecordsForMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, []attendance.Record{
		{Date: friday.AddDays(-1), StudentID: bob.ID, Status: attendance.StatusPresent},
		{Date: friday, StudentID: bob.ID, Status: attendance.StatusPresent},
	}, records)
	assert.Equal(t, attendance.Tally{Attended: 2, Classes: 2}, f.counters(t, bob))
}

func TestService_RecordsForMonth(t *testing.T) {
	f := setup(t)
	ada := testutil.CreateStudent(t, f.stuRepo, "CS101", "Ada", 1)
	statuses := map[int]attendance.Status{ada.ID: attendance.StatusPresent}

	dec31 := core.NewDate(2024, time.December, 31)
	jan1 := core.NewDate(2025, time.January, 1)
	f.apply(t, dec31, statuses)
	f.apply(t, jan1, statuses)
	f.apply(t, friday, statuses)

	ctx := context.Background()
	jan, err := f.svc.RecordsForMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	if assert.Len(t, jan, 2) {
		assert.Equal(t, jan1, jan[0].Date)
		assert.Equal(t, friday, jan[1].Date)
	}

	dec, err := f.svc.RecordsForMonth(ctx, 2024, time.December)
	require.NoError(t, err)
	if assert.Len(t, dec, 1) {
		assert.Equal(t, dec31, dec[0].Date)
	}

	feb, err := f.svc.RecordsForMonth(ctx, 2025, time.February)
	require.NoError(t, err)
	assert.Empty(t, feb)
}

func TestService_GetDay_closed(t *testing.T) {
	f := setup(t)
	day, err := f.svc.GetDay(context.Background(), sunday)
	require.NoError(t, err)
	assert.Equal(t, attendance.DaySheet{Date: sunday, Closed: true, Statuses: map[int]attendance.Status{}}, day)
}
