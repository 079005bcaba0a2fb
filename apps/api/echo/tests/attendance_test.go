package tests

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	. "github.com/httpspriya/GVP-AI-Hackathon-2026/apps/api/echo"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/attendance"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/report"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/tests"
)

func Test_attendanceApi_mark(t *testing.T) {
	app := setup(t)

	ada := testutil.CreateStudent(t, stuRepo, "CS101", "Ada", 1)
	bob := testutil.CreateStudent(t, stuRepo, "CS102", "Bob", 1)
	friday := core.NewDate(2025, time.January, 10)

	statuses := func(adaStatus, bobStatus string) []byte {
		return []byte(fmt.Sprintf(`{"date": "2025-01-10", "statuses": {"%d": %q, "%d": %q}}`, ada.ID, adaStatus, bob.ID, bobStatus))
	}

	runTests(t, app, []httpTest{
		{
			name: "first roll-call", method: http.MethodPost, path: "/v1/attendance", body: statuses("present", "absent"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, attendance.Result{Date: friday, Applied: true, Marked: 2, Present: 1}),
		},
		{
			name: "edit", method: http.MethodPost, path: "/v1/attendance", body: statuses("absent", "present"),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, attendance.Result{Date: friday, Applied: true, Edited: true, Marked: 2, Present: 1}),
		},
		{
			name: "missing students are absent", method: http.MethodPost, path: "/v1/attendance",
			body:     []byte(`{"statuses": {}}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, attendance.Result{Date: core.NewDate(2025, time.January, 15), Applied: true, Marked: 2}),
		},
		{
			name: "sunday", method: http.MethodPost, path: "/v1/attendance", body: []byte(`{"date": "2025-01-12"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, RejectResponse{
				Error:  attendance.ReasonNonAttendanceDay.Message(),
				Reason: attendance.ReasonNonAttendanceDay,
			}),
		},
		{
			name: "future", method: http.MethodPost, path: "/v1/attendance", body: []byte(`{"date": "2025-02-01"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, RejectResponse{
				Error:  attendance.ReasonFutureDate.Message(),
				Reason: attendance.ReasonFutureDate,
			}),
		},
		{
			name: "invalid date", method: http.MethodPost, path: "/v1/attendance", body: []byte(`{"date": "10/01/2025"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"date": `invalid date "10/01/2025", use YYYY-MM-DD`}),
		},
		{
			name: "invalid status", method: http.MethodPost, path: "/v1/attendance",
			body:     []byte(fmt.Sprintf(`{"statuses": {"%d": "late"}}`, ada.ID)),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"statuses": "status must be one of: present, absent"}),
		},
		{
			name: "unknown student", method: http.MethodPost, path: "/v1/attendance",
			body:     []byte(`{"date": "2025-01-10", "statuses": {"999": "present"}}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"statuses.999": student.ErrNotFound.Error()}),
		},
	})

	// Friday: Ada absent, Bob present; Today: both absent
	ada = testutil.ReloadStudent(t, stuRepo, ada)
	bob = testutil.ReloadStudent(t, stuRepo, bob)
	assert.Equal(t, 0, ada.TotalAttendance)
	assert.Equal(t, 2, ada.TotalClasses)
	assert.Equal(t, 1, bob.TotalAttendance)
	assert.Equal(t, 2, bob.TotalClasses)
}

func Test_attendanceApi_sheet(t *testing.T) {
	app := setup(t)

	ada := testutil.CreateStudent(t, stuRepo, "CS101", "Ada", 1)
	bob := testutil.CreateStudent(t, stuRepo, "CS102", "Bob", 1)
	today := core.NewDate(2025, time.January, 15)
	friday := core.NewDate(2025, time.January, 10)

	req, rec := newRequest(http.MethodPost, "/v1/attendance",
		[]byte(fmt.Sprintf(`{"date": "2025-01-10", "statuses": {"%d": "present"}}`, ada.ID)))
	app.ServeHTTP(rec, req)
	if !assert.Equal(t, http.StatusOK, rec.Code) {
		t.FailNow()
	}
	ada = testutil.ReloadStudent(t, stuRepo, ada)
	bob = testutil.ReloadStudent(t, stuRepo, bob)

	sheet := func(date core.Date, editMode, closed bool, statuses ...attendance.Status) AttendanceSheet {
		s := AttendanceSheet{Date: date, Today: today, EditMode: editMode, Closed: closed}
		for i, row := range report.Roster([]student.Student{ada, bob}) {
			r := AttendanceSheetRow{AttendanceRow: row}
			if len(statuses) > i {
				r.Status = statuses[i]
			}
			s.Rows = append(s.Rows, r)
		}
		return s
	}

	runTests(t, app, []httpTest{
		{name: "today", path: "/v1/attendance", wantCode: http.StatusOK, wantData: marchallObj(t, sheet(today, false, false))},
		{
			name: "taken day", path: "/v1/attendance?date=2025-01-10", wantCode: http.StatusOK,
			wantData: marchallObj(t, sheet(friday, true, false, attendance.StatusPresent, attendance.StatusAbsent)),
		},
		{
			name: "closed day", path: "/v1/attendance?date=2025-01-12", wantCode: http.StatusOK,
			wantData: marchallObj(t, sheet(core.NewDate(2025, time.January, 12), false, true)),
		},
		{name: "future falls back to today", path: "/v1/attendance?date=2030-01-01", wantCode: http.StatusOK, wantData: marchallObj(t, sheet(today, false, false))},
		{
			name: "invalid date", path: "/v1/attendance?date=lol", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, echo.Map{"date": `invalid date "lol", use YYYY-MM-DD`}),
		},
	})
}

func Test_reportApi(t *testing.T) {
	app := setup(t)

	ada := testutil.CreateStudent(t, stuRepo, "CS101", "Ada", 1)
	for _, date := range []string{"2025-01-09", "2025-01-10"} {
		req, rec := newRequest(http.MethodPost, "/v1/attendance",
			[]byte(fmt.Sprintf(`{"date": %q, "statuses": {"%d": "present"}}`, date, ada.ID)))
		app.ServeHTTP(rec, req)
		if !assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String()) {
			t.FailNow()
		}
	}
	ada = testutil.ReloadStudent(t, stuRepo, ada)
	students := []student.Student{ada}

	records := []attendance.Record{
		{Date: core.NewDate(2025, time.January, 9), StudentID: ada.ID, Status: attendance.StatusPresent},
		{Date: core.NewDate(2025, time.January, 10), StudentID: ada.ID, Status: attendance.StatusPresent},
	}

	runTests(t, app, []httpTest{
		{name: "overall", path: "/v1/reports/overall", wantCode: http.StatusOK, wantData: marchallObj(t, report.Overall(students))},
		{
			name: "monthly", path: "/v1/reports/attendance?month=2025-01", wantCode: http.StatusOK,
			wantData: marchallObj(t, report.Monthly(2025, time.January, students, records)),
		},
		{
			name: "monthly defaults to current month", path: "/v1/reports/attendance?month=lol", wantCode: http.StatusOK,
			wantData: marchallObj(t, report.Monthly(2025, time.January, students, records)),
		},
		{
			name: "empty month", path: "/v1/reports/attendance?month=2024-12", wantCode: http.StatusOK,
			wantData: marchallObj(t, report.Monthly(2024, time.December, students, nil)),
		},
	})
}

func Test_marksApi(t *testing.T) {
	app := setup(t)

	ada := testutil.CreateStudent(t, stuRepo, "CS101", "Ada", 1)
	bob := testutil.CreateStudent(t, stuRepo, "CS102", "Bob", 1)

	initial := report.Marks([]student.Student{ada, bob})
	ada.Marks = 92.5
	updated := report.Marks([]student.Student{ada, bob})

	runTests(t, app, []httpTest{
		{
			name: "empty sheet", path: "/v1/marks", wantCode: http.StatusOK,
			wantData: marchallObj(t, initial),
		},
		{
			name: "update", method: http.MethodPut, path: "/v1/marks",
			body:     []byte(fmt.Sprintf(`{"marks": {"%d": "92.5", "%d": "not a number"}}`, ada.ID, bob.ID)),
			wantCode: http.StatusOK, wantData: marchallObj(t, updated),
		},
		{name: "sheet", path: "/v1/marks", wantCode: http.StatusOK, wantData: marchallObj(t, updated)},
		{
			name: "unknown student", method: http.MethodPut, path: "/v1/marks", body: []byte(`{"marks": {"999": "50"}}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: student.ErrNotFound.Error()}),
		},
	})

	got, err := stuRepo.GetStudent(context.Background(), ada.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, 92.5, got.Marks)
	}
}
