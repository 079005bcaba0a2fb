package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/attendance"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/report"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

type attendanceApi struct {
	svc        attendance.ServiceInterface
	studentSvc student.ServiceInterface
}

func registerAttendanceAPI(g *echo.Group, svc attendance.ServiceInterface, studentSvc student.ServiceInterface) {
	api := attendanceApi{
		svc:        svc,
		studentSvc: studentSvc,
	}

	ag := g.Group("/attendance")
	ag.GET("", api.sheet)
	ag.POST("", api.mark)
}

// sheet returns the roll-call of a day (today by default, future dates fall back to today).
func (api *attendanceApi) sheet(ctx echo.Context) error {
	today := api.svc.Today()
	date := today
	if param := core.CleanString(ctx.QueryParam("date")); param != "" {
		var err error
		if date, err = core.ParseDate(param); err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "date", Error: err.Error()})
		}
		if date.After(today) {
			date = today
		}
	}

	students, err := api.studentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	day, err := api.svc.GetDay(ctx.Request().Context(), date)
	if err != nil {
		return errors.Wrap(err, "getting attendance day")
	}

	sheet := AttendanceSheet{
		Date:     date,
		Today:    today,
		EditMode: day.Taken,
		Closed:   day.Closed,
		Rows:     make([]AttendanceSheetRow, 0, len(students)),
	}
	for _, row := range report.Roster(students) {
		sheet.Rows = append(sheet.Rows, AttendanceSheetRow{AttendanceRow: row, Status: day.Statuses[row.ID]})
	}
	return ctx.JSON(http.StatusOK, sheet)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.MarkDay
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkDay")
	}
	date, statuses, err := data.Parse(api.svc.Today())
	if err != nil {
		return err
	}

	res, err := api.svc.ApplyDay(ctx.Request().Context(), date, statuses)
	if err != nil {
		return errors.Wrap(err, "applying attendance")
	}
	if !res.Applied {
		return ctx.JSON(http.StatusBadRequest, RejectResponse{Error: res.Reason.Message(), Reason: res.Reason})
	}
	return ctx.JSON(http.StatusOK, res)
}

type (
	AttendanceSheetRow struct {
		report.AttendanceRow
		Status attendance.Status `json:"status,omitempty"` // "" when the day was not taken
	}

	AttendanceSheet struct {
		Date     core.Date            `json:"date"`
		Today    core.Date            `json:"today"`
		EditMode bool                 `json:"edit_mode"`
		Closed   bool                 `json:"closed"`
		Rows     []AttendanceSheetRow `json:"students"`
	}

	RejectResponse struct {
		Error  string                  `json:"error"`
		Reason attendance.RejectReason `json:"reason"`
	}
)
