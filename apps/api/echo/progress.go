package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core/progress"
)

type progressApi struct {
	svc *progress.Service
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *progress.Service) {
	api := progressApi{svc: svc}

	pg := g.Group("/progress", jwt)
	pg.POST("/enroll/:subject_id", api.enroll)
	pg.POST("/update/:lesson_id", api.update)
	pg.GET("/my-progress", api.query)
}

// Handlers

func (api *progressApi) enroll(ctx echo.Context) error {
	subjectID, err := pathID(ctx, "subject_id")
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	enr, created, err := api.svc.Enroll(ctx.Request().Context(), claims.Subject, subjectID)
	if err != nil {
		return errors.Wrap(err, "enrolling")
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return ctx.JSON(code, enr)
}

func (api *progressApi) update(ctx echo.Context) error {
	lessonID, err := pathID(ctx, "lesson_id")
	if err != nil {
		return err
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data progress.ProgressUpdate
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProgressUpdate")
	}

	lp, err := api.svc.UpdateProgress(ctx.Request().Context(), claims.Subject, lessonID, data)
	if err != nil {
		return errors.Wrap(err, "updating progress")
	}
	return ctx.JSON(http.StatusOK, lp)
}

func (api *progressApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	records, err := api.svc.ListProgress(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "listing progress")
	}
	return ctx.JSON(http.StatusOK, records)
}
