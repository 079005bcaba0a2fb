package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/report"
	"github.com/httpspriya/GVP-AI-Hackathon-2026/core/student"
)

type studentApi struct {
	svc      student.ServiceInterface
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc student.ServiceInterface, validate *validator.Validate) {
	api := studentApi{
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.POST("/samples", api.generateSamples)
	sg.POST("/validate-roll", api.validateRoll)
	sg.GET("/:id", api.retrieve)
	sg.DELETE("/:id", api.destroy)
}

func home(svc student.ServiceInterface) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		students, err := svc.QueryAll(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "querying students")
		}
		return ctx.JSON(http.StatusOK, report.Dashboard(students))
	}
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	ordering := new(Ordering)
	ordering.Bind(ctx)

	students, err := api.svc.QueryAll(ctx.Request().Context(), ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, report.Roster(students))
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	stu, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	stu, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) generateSamples(ctx echo.Context) error {
	var data student.SamplesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SamplesRequest")
	}

	added, err := api.svc.GenerateSamples(ctx.Request().Context(), data.Count)
	if err != nil {
		return errors.Wrap(err, "generating samples")
	}
	return ctx.JSON(http.StatusCreated, SamplesResponse{Added: added})
}

func (api *studentApi) validateRoll(ctx echo.Context) error {
	var data ValidateRollRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ValidateRollRequest")
	}
	valid, msg := student.ValidateRollNumber(data.RollNo)
	return ctx.JSON(http.StatusOK, ValidateRollResponse{Valid: valid, Message: msg})
}

func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

type (
	SamplesResponse struct {
		Added int `json:"added"`
	}

	ValidateRollRequest struct {
		RollNo string `json:"roll_no"`
	}

	ValidateRollResponse struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
)
