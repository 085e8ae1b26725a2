package domain

import (
	"errors"
	"time"
)

var ErrTokenInvalid = errors.New("token invalid")
var ErrTokenExpired = errors.New("token expired")
var ErrMissingIdentity = errors.New("missing identity headers")

// TokenClaims is the decoded content of an identity token. Expiry is the
// only invalidation mechanism; there is no revocation list.
type TokenClaims struct {
	UserID    string
	Email     string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TrustedIdentity is the request-scoped identity recovered downstream from
// the headers the gateway injected. It is derived, never persisted, and
// must never be fabricated from any other source: the gateway is the only
// component that verifies the token.
type TrustedIdentity struct {
	UserID string
	Email  string
	Roles  []string
}

// HasAnyRole reports whether the identity holds at least one of the given roles.
func (id TrustedIdentity) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range id.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
