package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// SubmissionDedup maps an owner's Idempotency-Key to the claim it created,
// backed by Redis. Key format: claims:idem:<owner_id>:<key>
type SubmissionDedup struct {
	client *redis.Client
}

// NewSubmissionDedup creates a SubmissionDedup wrapping the given client.
func NewSubmissionDedup(client *redis.Client) *SubmissionDedup {
	return &SubmissionDedup{client: client}
}

// Lookup returns the claim id recorded for this owner/key pair, or "" when
// the pair has not been seen.
func (d *SubmissionDedup) Lookup(ctx context.Context, ownerID, key string) (string, error) {
	claimID, err := d.client.Get(ctx, d.key(ownerID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return claimID, nil
}

// Remember records the claim created for this owner/key pair (expires
// after dedupTTL).
func (d *SubmissionDedup) Remember(ctx context.Context, ownerID, key, claimID string) error {
	return d.client.Set(ctx, d.key(ownerID, key), claimID, dedupTTL).Err()
}

func (d *SubmissionDedup) key(ownerID, key string) string {
	return fmt.Sprintf("claims:idem:%s:%s", ownerID, key)
}
