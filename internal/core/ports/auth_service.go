package ports

import (
	"context"

	"github.com/ucrmp/claims-platform/internal/core/domain"
)

// RegisterInput carries everything needed to create a new principal.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService is the identity issuer: it creates principals and exchanges
// valid credentials for a signed identity token. No token is issued on
// registration.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenCodec encodes and decodes the signed, time-bounded identity token.
// Decode verifies the signature before trusting any claim.
type TokenCodec interface {
	Issue(user *domain.User) (string, error)
	Decode(token string) (*domain.TokenClaims, error)
}
