package ports

import (
	"context"

	"github.com/ucrmp/claims-platform/internal/core/domain"
)

// UserRepository defines the persistence boundary for principals.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
