package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/codedaily/core/doctools"
)

type (
	toolCall struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}

	textContent struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}

	toolCallResult struct {
		Content []textContent `json:"content"`
	}
)

var errNameRequired = echo.NewHTTPError(http.StatusBadRequest, "name is required")

type toolsApi struct {
	dispatcher *doctools.Dispatcher
}

// newHTTPServer serves the catalog and tool calls as plain JSON.
func newHTTPServer(d *doctools.Dispatcher, reqLogs bool) *echo.Echo {
	app := echo.New()
	app.HideBanner = true
	app.Pre(middleware.RemoveTrailingSlash())
	if reqLogs {
		app.Use(middleware.Logger())
	}
	app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	app.HTTPErrorHandler = httpErrorHandler

	api := toolsApi{dispatcher: d}
	app.GET("/tools", api.list)
	app.POST("/tools/call", api.call)
	return app
}

func httpErrorHandler(err error, ctx echo.Context) {
	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if herr, ok := err.(*echo.HTTPError); ok {
		code = herr.Code
		if m, ok := herr.Message.(string); ok {
			msg = m
		}
	}
	if !ctx.Response().Committed {
		if err := ctx.JSON(code, echo.Map{"error": msg}); err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}

func (api *toolsApi) list(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, doctools.Catalog())
}

func (api *toolsApi) call(ctx echo.Context) error {
	var data toolCall
	if err := ctx.Bind(&data); err != nil {
		return err
	}
	if data.Name == "" {
		return errNameRequired
	}

	res := api.dispatcher.Dispatch(ctx.Request().Context(), data.Name, data.Arguments)
	return ctx.JSON(http.StatusOK, toolCallResult{
		Content: []textContent{{Type: "text", Text: res.Text()}},
	})
}
