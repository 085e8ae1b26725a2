// Package metrics defines and registers all custom Prometheus metrics for
// the claims platform. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "claims"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts bearer tokens rejected at the gateway.
// Label:
//   - reason: "missing_header", "malformed_header", "expired", "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of requests rejected by the edge authenticator.",
	},
	[]string{"reason"},
)

// ClaimsSubmittedTotal counts successfully created claims.
// Label:
//   - type: the claim type discriminator (e.g. "TRAVEL")
var ClaimsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submitted_total",
		Help:      "Total number of claims successfully submitted.",
	},
	[]string{"type"},
)

// IdempotentReplaysTotal counts claim submissions answered from the
// idempotency store instead of creating a new claim.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of claim submissions replayed via Idempotency-Key.",
	},
)

// MetadataRejectionsTotal counts claim submissions blocked by metadata
// schema validation.
// Label:
//   - type: the claim type discriminator
var MetadataRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "metadata_rejections_total",
		Help:      "Total number of claim submissions rejected by metadata validation.",
	},
	[]string{"type"},
)
