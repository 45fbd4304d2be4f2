package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core/tutor"
)

type tutorApi struct {
	svc      *tutor.Service
	validate *validator.Validate
}

func registerTutorAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *tutor.Service, validate *validator.Validate) {
	api := tutorApi{svc: svc, validate: validate}

	g.POST("/ai/explain", api.explain, jwt)
}

func (api *tutorApi) explain(ctx echo.Context) error {
	var data tutor.ExplainRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ExplainRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	expl, err := api.svc.Explain(ctx.Request().Context(), data)
	if err != nil {
		if err == tutor.ErrUnavailable {
			return errHttpBadGateway
		}
		return errors.Wrap(err, "explaining lesson")
	}
	return ctx.JSON(http.StatusOK, expl)
}
