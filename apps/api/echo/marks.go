package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/report"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

type marksApi struct {
	svc student.ServiceInterface
}

func registerMarksAPI(g *echo.Group, svc student.ServiceInterface) {
	api := marksApi{svc: svc}

	mg := g.Group("/marks")
	mg.GET("", api.sheet)
	mg.PUT("", api.update)
}

func (api *marksApi) sheet(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, report.Marks(students))
}

func (api *marksApi) update(ctx echo.Context) error {
	var data student.MarksUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarksUpdate")
	}

	students, err := api.svc.UpdateMarks(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "updating marks")
	}
	return ctx.JSON(http.StatusOK, report.Marks(students))
}
