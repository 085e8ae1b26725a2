package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ClaimType is the discriminator that selects which metadata shape a claim
// must conform to. Types without a registered metadata schema are accepted
// and stored opaquely.
type ClaimType string

const (
	ClaimTravel        ClaimType = "TRAVEL"
	ClaimMedical       ClaimType = "MEDICAL"
	ClaimEntertainment ClaimType = "ENTERTAINMENT"
)

// ClaimStatus is the lifecycle state of a claim. Every claim is created as
// SUBMITTED; transitions are owned by a separate approval workflow and are
// not modelled here.
type ClaimStatus string

const StatusSubmitted ClaimStatus = "SUBMITTED"

var ErrClaimNotFound = errors.New("claim not found")
var ErrForbidden = errors.New("access forbidden")
var ErrMetadataInvalid = errors.New("invalid claim metadata")

// MetadataError reports why a claim's metadata failed validation against the
// schema registered for its type. Field messages are safe to return to the
// caller; they describe caller input, not internals.
type MetadataError struct {
	Type   ClaimType
	Fields []string
}

func (e *MetadataError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("invalid metadata for claim type %s", e.Type)
	}
	return fmt.Sprintf("invalid metadata for claim type %s: %s", e.Type, strings.Join(e.Fields, "; "))
}

func (e *MetadataError) Unwrap() error { return ErrMetadataInvalid }

// Claim is the core aggregate: an expense claim owned by a single user.
// Metadata holds the canonical, schema-validated encoding of the
// type-dependent payload. UserID is immutable after creation.
type Claim struct {
	ID          string          `json:"id" bson:"_id"`
	UserID      string          `json:"user_id" bson:"user_id"`
	ClaimType   ClaimType       `json:"claim_type" bson:"claim_type"`
	Amount      float64         `json:"amount" bson:"amount"`
	Status      ClaimStatus     `json:"status" bson:"status"`
	Description string          `json:"description,omitempty" bson:"description,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" bson:"updated_at"`
}
