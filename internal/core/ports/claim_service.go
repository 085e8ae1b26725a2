package ports

import (
	"context"
	"encoding/json"
	"time"
)

// CreateClaimInput carries all data needed to submit a new claim.
// OwnerID comes from the trusted identity headers, never from the payload.
type CreateClaimInput struct {
	OwnerID     string
	ClaimType   string
	Amount      float64
	Description string
	Metadata    json.RawMessage
	// IdempotencyKey, when non-empty, makes resubmission with the same key
	// return the originally created claim instead of a duplicate.
	IdempotencyKey string
}

// ClaimView is the claim representation returned to the transport layer.
// Metadata has already been rendered back from its stored canonical form;
// it is nil when the stored blob could not be decoded.
type ClaimView struct {
	ID          string
	OwnerID     string
	ClaimType   string
	Amount      float64
	Status      string
	Description string
	Metadata    json.RawMessage
	CreatedAt   time.Time
}

// CreateClaimResult is returned by Create. AlreadyExisted is true when the
// idempotency key matched an earlier submission.
type CreateClaimResult struct {
	Claim          ClaimView
	AlreadyExisted bool
}

// GetClaimInput identifies a claim and the caller requesting it. Ownership
// is enforced against CallerID unless the caller holds an admin role.
type GetClaimInput struct {
	ClaimID     string
	CallerID    string
	CallerRoles []string
}

// ClaimService defines the use-case operations for claims.
type ClaimService interface {
	Create(ctx context.Context, input CreateClaimInput) (*CreateClaimResult, error)
	ListByOwner(ctx context.Context, ownerID string) ([]ClaimView, error)
	Get(ctx context.Context, input GetClaimInput) (*ClaimView, error)
}
