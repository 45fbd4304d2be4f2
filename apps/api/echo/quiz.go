package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core/quiz"
)

type quizApi struct {
	svc      *quiz.Service
	validate *validator.Validate
}

func registerQuizAPI(g *echo.Group, jwt, admin echo.MiddlewareFunc, svc *quiz.Service, validate *validator.Validate) {
	api := quizApi{
		svc:      svc,
		validate: validate,
	}

	qg := g.Group("/quizzes")

	// public endpoints
	qg.GET("/:lesson_id", api.retrieve)

	// authed endpoints
	qg.GET("/attempts", api.queryAttempts, jwt)
	qg.POST("/submit/:quiz_id", api.submit, jwt)
	qg.POST("", api.create, jwt, admin)
}

// Handlers

func (api *quizApi) retrieve(ctx echo.Context) error {
	lessonID, err := pathID(ctx, "lesson_id")
	if err != nil {
		return err
	}
	qz, err := api.svc.GetForLesson(ctx.Request().Context(), lessonID)
	if err != nil {
		return errors.Wrap(err, "finding quiz by lesson")
	}
	return ctx.JSON(http.StatusOK, qz)
}

// submit grades the submitted answers server side and records one attempt per call.
// Only the aggregate result is returned, never per-answer correctness.
func (api *quizApi) submit(ctx echo.Context) error {
	quizID, err := pathID(ctx, "quiz_id")
	if err != nil {
		return err
	}
	var data quiz.Submission
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Submission")
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	res, err := api.svc.Submit(ctx.Request().Context(), claims.Subject, quizID, data.Answers)
	if err != nil {
		return errors.Wrap(err, "submitting quiz")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *quizApi) queryAttempts(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	ordering := newOrdering(quiz.AttemptOrderingFields()...)
	ordering.Bind(ctx)

	attempts, err := api.svc.QueryAttempts(ctx.Request().Context(), quiz.AttemptFilter{UserID: claims.Subject}, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying attempts")
	}
	return ctx.JSON(http.StatusOK, attempts)
}

func (api *quizApi) create(ctx echo.Context) error {
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	qz, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, qz)
}
