// Package metrics defines and registers all custom Prometheus metrics for the
// GroupCast API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "groupcast"

// ── Authentication metrics ────────────────────────────────────────────────────

// TokenVerificationsTotal counts bearer token verification attempts.
// Labels:
//   - type: declared token type ("admin", "user"), or "unknown" when the
//     token never parsed far enough to tell
//   - outcome: "ok", "invalid", "stale_principal" (token verified but the
//     referenced account no longer exists), or "superseded" (a user token
//     verified but the session cookie had already resolved the user)
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verification attempts, by type and outcome.",
	},
	[]string{"type", "outcome"},
)

// SessionResolutionsTotal counts session cookie resolution attempts per request.
// Label:
//   - outcome: "ok" (user resolved), "none" (no usable session), or "error"
//     (the session store failed; the request proceeded anonymously)
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session cookie resolution attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardRejectionsTotal counts requests rejected by an authorization guard.
// Labels:
//   - guard: "user", "admin_role", or "admin_token"
//   - reason: "unauthenticated" (no usable identity, 401) or "forbidden"
//     (identity present but lacking the required role, 403)
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by an authorization guard.",
	},
	[]string{"guard", "reason"},
)

// LoginAttemptsTotal counts operator login attempts.
// Label:
//   - outcome: "ok", "invalid_credentials", or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Activity log metrics ──────────────────────────────────────────────────────

// ActivityQueueDepth tracks the current number of audit entries waiting in
// each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityWriteErrorsTotal counts audit entries that failed to persist.
var ActivityWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_write_errors_total",
		Help:      "Total number of audit entries that failed to persist.",
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentCapturesTotal counts provider capture callbacks.
// Label:
//   - result: "applied" or "error"; replayed deliveries count as applied
var PaymentCapturesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_captures_total",
		Help:      "Total number of payment capture callbacks, by result.",
	},
	[]string{"result"},
)
