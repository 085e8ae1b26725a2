package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ucrmp/claims-platform/internal/api/metrics"
	"github.com/ucrmp/claims-platform/internal/core/domain"
	"github.com/ucrmp/claims-platform/internal/core/metadata"
	"github.com/ucrmp/claims-platform/internal/core/ports"
)

// SubmissionDedup abstracts the idempotency store (Redis). Lookup returns
// the claim id recorded for an owner/key pair, or "" when unseen.
type SubmissionDedup interface {
	Lookup(ctx context.Context, ownerID, key string) (string, error)
	Remember(ctx context.Context, ownerID, key, claimID string) error
}

// ClaimService implements claim submission and retrieval. Metadata is
// validated against the schema registered for the claim type before the
// claim is persisted, and rendered back from its stored form on reads.
type ClaimService struct {
	repo     ports.ClaimRepository
	registry *metadata.Registry
	dedup    SubmissionDedup
	log      zerolog.Logger
}

func NewClaimService(repo ports.ClaimRepository, registry *metadata.Registry, dedup SubmissionDedup, log zerolog.Logger) *ClaimService {
	return &ClaimService{repo: repo, registry: registry, dedup: dedup, log: log}
}

// Create validates and persists a new claim with status SUBMITTED. When an
// idempotency key is provided and already seen for this owner, the claim
// created by the first submission is returned without side effects.
func (s *ClaimService) Create(ctx context.Context, input ports.CreateClaimInput) (*ports.CreateClaimResult, error) {
	if input.IdempotencyKey != "" && s.dedup != nil {
		claimID, err := s.dedup.Lookup(ctx, input.OwnerID, input.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Str("owner_id", input.OwnerID).Msg("idempotency lookup failed, processing anyway")
		} else if claimID != "" {
			existing, err := s.repo.FindByID(ctx, claimID)
			if err == nil && existing != nil {
				metrics.IdempotentReplaysTotal.Inc()
				s.log.Info().Str("claim_id", claimID).Str("idempotency_key", input.IdempotencyKey).Msg("idempotent replay")
				return &ports.CreateClaimResult{Claim: s.toView(existing), AlreadyExisted: true}, nil
			}
		}
	}

	claimType := domain.ClaimType(input.ClaimType)
	_, canonical, err := s.registry.Validate(claimType, input.Metadata)
	if err != nil {
		metrics.MetadataRejectionsTotal.WithLabelValues(input.ClaimType).Inc()
		return nil, err
	}

	now := time.Now().UTC()
	claim := &domain.Claim{
		ID:          uuid.NewString(),
		UserID:      input.OwnerID,
		ClaimType:   claimType,
		Amount:      input.Amount,
		Status:      domain.StatusSubmitted,
		Description: input.Description,
		Metadata:    canonical,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, claim); err != nil {
		s.log.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create claim")
		return nil, fmt.Errorf("create claim: %w", err)
	}

	if input.IdempotencyKey != "" && s.dedup != nil {
		if err := s.dedup.Remember(ctx, input.OwnerID, input.IdempotencyKey, claim.ID); err != nil {
			s.log.Warn().Err(err).Str("claim_id", claim.ID).Msg("failed to record idempotency key")
		}
	}

	metrics.ClaimsSubmittedTotal.WithLabelValues(input.ClaimType).Inc()
	s.log.Info().Str("claim_id", claim.ID).Str("owner_id", input.OwnerID).Str("claim_type", input.ClaimType).Msg("claim created")

	return &ports.CreateClaimResult{Claim: s.toView(claim)}, nil
}

// ListByOwner returns all claims owned by the given user.
func (s *ClaimService) ListByOwner(ctx context.Context, ownerID string) ([]ports.ClaimView, error) {
	claims, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}

	views := make([]ports.ClaimView, len(claims))
	for i, c := range claims {
		views[i] = s.toView(c)
	}
	return views, nil
}

// Get returns a single claim. Callers only see their own claims unless
// they hold the admin role.
func (s *ClaimService) Get(ctx context.Context, input ports.GetClaimInput) (*ports.ClaimView, error) {
	claim, err := s.repo.FindByID(ctx, input.ClaimID)
	if err != nil {
		return nil, err
	}

	if claim.UserID != input.CallerID && !isAdmin(input.CallerRoles) {
		return nil, domain.ErrForbidden
	}

	view := s.toView(claim)
	return &view, nil
}

// toView renders the stored metadata back for output. A corrupt blob
// degrades to nil metadata; the claim itself is still returned.
func (s *ClaimService) toView(c *domain.Claim) ports.ClaimView {
	return ports.ClaimView{
		ID:          c.ID,
		OwnerID:     c.UserID,
		ClaimType:   string(c.ClaimType),
		Amount:      c.Amount,
		Status:      string(c.Status),
		Description: c.Description,
		Metadata:    s.registry.Render(c.ClaimType, c.Metadata),
		CreatedAt:   c.CreatedAt,
	}
}

func isAdmin(roles []string) bool {
	for _, r := range roles {
		if r == domain.RoleAdmin {
			return true
		}
	}
	return false
}
