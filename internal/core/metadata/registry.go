// Package metadata validates the type-dependent payload attached to a claim.
//
// Each claim type with a registered schema gets a decode function that maps
// the raw JSON into a typed variant, which is then checked against its
// validation tags. The variant set is closed by registration: unregistered
// types are accepted and stored opaquely, with no structural guarantee.
package metadata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/rs/zerolog"

	"github.com/ucrmp/claims-platform/internal/core/domain"
)

// TravelMetadata is the required shape for TRAVEL claims. Whitespace-only
// values do not satisfy notblank.
type TravelMetadata struct {
	HotelName    string `json:"hotelName"    validate:"notblank"`
	FlightNumber string `json:"flightNumber" validate:"notblank"`
}

// MedicalMetadata is the required shape for MEDICAL claims.
type MedicalMetadata struct {
	HospitalName       string `json:"hospitalName"       validate:"notblank"`
	PrescriptionNumber string `json:"prescriptionNumber" validate:"required,min=5"`
}

// DecodeFunc maps a raw payload to the typed variant for one claim type.
// Unknown fields in the payload are a decode error.
type DecodeFunc func(raw json.RawMessage) (any, error)

// Registry dispatches metadata validation and rendering by claim type.
// It is populated at startup and read-only afterwards, so it is safe for
// concurrent use across requests.
type Registry struct {
	validate *validator.Validate
	decoders map[domain.ClaimType]DecodeFunc
	log      zerolog.Logger
}

// NewRegistry returns a Registry with the TRAVEL and MEDICAL schemas
// registered.
func NewRegistry(log zerolog.Logger) *Registry {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	r := &Registry{
		validate: v,
		decoders: make(map[domain.ClaimType]DecodeFunc),
		log:      log,
	}
	r.Register(domain.ClaimTravel, decodeInto[TravelMetadata])
	r.Register(domain.ClaimMedical, decodeInto[MedicalMetadata])
	return r
}

// Register binds a claim type to its decode function. Call before serving
// requests; the registry is not mutated afterwards.
func (r *Registry) Register(t domain.ClaimType, fn DecodeFunc) {
	r.decoders[t] = fn
}

// Registered reports whether the claim type has a schema.
func (r *Registry) Registered(t domain.ClaimType) bool {
	_, ok := r.decoders[t]
	return ok
}

// Validate checks raw against the schema registered for t and returns the
// typed variant together with its canonical serialized form. For types
// without a schema the payload is compacted and stored as-is; the typed
// variant is nil.
func (r *Registry) Validate(t domain.ClaimType, raw json.RawMessage) (any, json.RawMessage, error) {
	decode, ok := r.decoders[t]
	if !ok {
		if !json.Valid(raw) {
			return nil, nil, &domain.MetadataError{Type: t, Fields: []string{"metadata is not valid JSON"}}
		}
		r.log.Warn().Str("claim_type", string(t)).Msg("no metadata schema registered, storing payload unchecked")
		return nil, compact(raw), nil
	}

	variant, err := decode(raw)
	if err != nil {
		return nil, nil, &domain.MetadataError{Type: t, Fields: []string{err.Error()}}
	}

	if err := r.validate.Struct(variant); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return nil, nil, &domain.MetadataError{Type: t, Fields: fieldMessages(ve)}
		}
		return nil, nil, &domain.MetadataError{Type: t, Fields: []string{err.Error()}}
	}

	canonical, err := json.Marshal(variant)
	if err != nil {
		return nil, nil, &domain.MetadataError{Type: t, Fields: []string{err.Error()}}
	}
	return variant, canonical, nil
}

// Render returns the stored metadata for output. A corrupt stored blob
// degrades to nil plus a logged warning rather than failing the request:
// the claim record itself is still valid.
func (r *Registry) Render(t domain.ClaimType, stored json.RawMessage) json.RawMessage {
	if len(stored) == 0 {
		return nil
	}
	if !json.Valid(stored) {
		r.log.Warn().Str("claim_type", string(t)).Msg("stored metadata is corrupt, rendering null")
		return nil
	}
	return stored
}

// decodeInto decodes raw strictly into T, rejecting unknown fields the way
// the registered schemas define their variants.
func decodeInto[T any](raw json.RawMessage) (any, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return v, nil
}

func fieldMessages(ve validator.ValidationErrors) []string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed validation (%s)", field, fe.Tag()))
		}
	}
	return msgs
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return json.RawMessage(buf.Bytes())
}
