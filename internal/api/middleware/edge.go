package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ucrmp/claims-platform/internal/api/metrics"
	"github.com/ucrmp/claims-platform/internal/core/domain"
	"github.com/ucrmp/claims-platform/internal/core/ports"
)

// Trust headers set by the gateway after token verification. Downstream
// services treat them as unforgeable: only the gateway's network path may
// reach them. Any inbound values are stripped before injection.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRoles = "X-User-Roles"
)

// TokenDecoder is the slice of ports.TokenCodec the edge needs.
type TokenDecoder interface {
	Decode(token string) (*domain.TokenClaims, error)
}

var _ TokenDecoder = (ports.TokenCodec)(nil)

// Edge is the gateway-side authenticator. Per request it:
//  1. passes public paths (prefix match) through untouched,
//  2. requires an "Authorization: Bearer <token>" header,
//  3. decodes the token — the single point of cryptographic trust,
//  4. rewrites the outbound request to carry the identity as trust headers.
//
// Requests failing steps 2–3 are answered 401 and never forwarded.
func Edge(decoder TokenDecoder, publicPaths []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// A client must never be able to smuggle trust headers past
			// the edge, on public paths included.
			req.Header.Del(HeaderUserID)
			req.Header.Del(HeaderUserEmail)
			req.Header.Del(HeaderUserRoles)

			if isPublicPath(req.URL.Path, publicPaths) {
				return next(c)
			}

			authHeader := req.Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := decoder.Decode(parts[1])
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrTokenExpired) {
					reason = "expired"
				}
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			req.Header.Set(HeaderUserID, claims.UserID)
			req.Header.Set(HeaderUserEmail, claims.Email)
			req.Header.Set(HeaderUserRoles, strings.Join(claims.Roles, ","))

			return next(c)
		}
	}
}

// isPublicPath reports whether path matches the allow-list by exact or
// prefix match.
func isPublicPath(path string, publicPaths []string) bool {
	for _, p := range publicPaths {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
