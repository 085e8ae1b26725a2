package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRoles enforces role-based access on routes behind TrustedIdentity.
// The request passes when the identity holds at least one allowed role.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusBadRequest, "missing identity headers")
			}
			if !id.HasAnyRole(allowedRoles...) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
