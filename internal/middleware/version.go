package middleware

import (
	"github.com/labstack/echo/v4"
)

// APIVersion is reported by GET / and in the X-API-Version header
const APIVersion = "2.0.0"

// VersionHeader adds version information to response headers
func VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-API-Version", version)
			return next(c)
		}
	}
}
