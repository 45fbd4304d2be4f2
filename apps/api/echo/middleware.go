package echoapi

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
)

// adminMiddleware only lets staff through. It must run after the JWT middleware.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if claims.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

const headerCacheControl = "Cache-Control"

// cacheControlMiddleware marks responses as publicly cacheable for `maxAge`.
// The error handler drops the header from error responses.
func cacheControlMiddleware(maxAge time.Duration) echo.MiddlewareFunc {
	value := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Response().Header().Set(headerCacheControl, value)
			return next(ctx)
		}
	}
}
