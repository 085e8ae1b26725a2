package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ucrmp/claims-platform/internal/core/domain"
)

const identityKey = "trusted_identity"

// TrustedIdentity is the downstream counterpart of the Edge middleware: it
// recovers the caller's identity from the propagated headers without
// re-verifying the token. A missing header means the request did not come
// through the gateway (topology breach or misconfigured route) and is
// rejected with 400 — identity is never inferred from anything else.
func TrustedIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header

			userID := h.Get(HeaderUserID)
			email := h.Get(HeaderUserEmail)
			roles := h.Get(HeaderUserRoles)
			if userID == "" || email == "" || roles == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing identity headers")
			}

			c.Set(identityKey, domain.TrustedIdentity{
				UserID: userID,
				Email:  email,
				Roles:  splitRoles(roles),
			})
			return next(c)
		}
	}
}

// IdentityFromContext returns the identity stored by TrustedIdentity.
// The boolean is false when the middleware did not run on this route.
func IdentityFromContext(c echo.Context) (domain.TrustedIdentity, bool) {
	id, ok := c.Get(identityKey).(domain.TrustedIdentity)
	return id, ok
}

func splitRoles(joined string) []string {
	parts := strings.Split(joined, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}
