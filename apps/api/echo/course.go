package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core/course"
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerCourseAPI(
	g *echo.Group,
	jwt, admin, cache echo.MiddlewareFunc,
	svc *course.Service,
	validate *validator.Validate,
) {
	api := courseApi{
		svc:      svc,
		validate: validate,
	}

	cg := g.Group("/courses")

	// public endpoints
	cg.GET("/subjects", api.querySubjects, cache)
	cg.GET("/subjects/:slug", api.retrieveSubject, cache)
	cg.GET("/lessons/:id", api.retrieveLesson, cache)

	// admin endpoints
	cg.POST("/subjects", api.createSubject, jwt, admin)
	cg.POST("/topics", api.createTopic, jwt, admin)
	cg.POST("/lessons", api.createLesson, jwt, admin)
}

// pathID parses the int path param `name`; anything else is a 404.
func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}

// Handlers

func (api *courseApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.QuerySubjects(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *courseApi) retrieveSubject(ctx echo.Context) error {
	subj, err := api.svc.GetSubjectBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return errors.Wrap(err, "finding subject by slug")
	}
	return ctx.JSON(http.StatusOK, subj)
}

func (api *courseApi) retrieveLesson(ctx echo.Context) error {
	id, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	lesson, err := api.svc.GetLessonByID(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "finding lesson by ID")
	}
	return ctx.JSON(http.StatusOK, lesson)
}

func (api *courseApi) createSubject(ctx echo.Context) error {
	var data course.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	subj, err := api.svc.CreateSubject(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, subj)
}

func (api *courseApi) createTopic(ctx echo.Context) error {
	var data course.NewTopic
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTopic")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	topic, err := api.svc.CreateTopic(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating topic")
	}
	return ctx.JSON(http.StatusCreated, topic)
}

func (api *courseApi) createLesson(ctx echo.Context) error {
	var data course.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lesson, err := api.svc.CreateLesson(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, lesson)
}
