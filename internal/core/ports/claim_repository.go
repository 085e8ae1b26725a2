package ports

import (
	"context"

	"github.com/ucrmp/claims-platform/internal/core/domain"
)

// ClaimRepository defines persistence operations for claims.
type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	FindByID(ctx context.Context, id string) (*domain.Claim, error)
	// ListByOwner returns all claims owned by the given user, newest first.
	ListByOwner(ctx context.Context, userID string) ([]*domain.Claim, error)
}
