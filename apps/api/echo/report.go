package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/attendance"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/report"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

type reportApi struct {
	attendanceSvc attendance.ServiceInterface
	studentSvc    student.ServiceInterface
}

func registerReportAPI(g *echo.Group, attendanceSvc attendance.ServiceInterface, studentSvc student.ServiceInterface) {
	api := reportApi{
		attendanceSvc: attendanceSvc,
		studentSvc:    studentSvc,
	}

	rg := g.Group("/reports")
	rg.GET("/overall", api.overall)
	rg.GET("/attendance", api.monthly)
}

func (api *reportApi) overall(ctx echo.Context) error {
	students, err := api.studentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, report.Overall(students))
}

func (api *reportApi) monthly(ctx echo.Context) error {
	year, month := report.ParseMonth(ctx.QueryParam("month"), api.attendanceSvc.Today())

	students, err := api.studentSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	records, err := api.attendanceSvc.RecordsForMonth(ctx.Request().Context(), year, month)
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	return ctx.JSON(http.StatusOK, report.Monthly(year, month, students, records))
}
