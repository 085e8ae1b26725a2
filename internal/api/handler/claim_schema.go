package handler

import (
	"encoding/json"
	"time"
)

type createClaimRequest struct {
	ClaimType   string          `json:"claim_type"  validate:"required"`
	Amount      float64         `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"max=1000"`
	Metadata    json.RawMessage `json:"metadata"    validate:"required"`
}

// claimResponse is the transport representation of a claim. Metadata is the
// rendered payload; null when the stored blob could not be decoded.
type claimResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ClaimType   string          `json:"claim_type"`
	Amount      float64         `json:"amount"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
}

type listClaimsResponse struct {
	Data []claimResponse `json:"data"`
}
