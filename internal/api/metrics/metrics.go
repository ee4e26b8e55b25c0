// Package metrics defines all custom Prometheus metrics for the Kodbank API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on GET /metrics alongside the standard HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kodbank"

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LedgerOperationsTotal counts ledger operations by outcome.
// Labels:
//   - type: "deposit", "withdraw", or "check_balance"
//   - status: "success" or "failed"
var LedgerOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_operations_total",
		Help:      "Total number of ledger operations, by type and outcome.",
	},
	[]string{"type", "status"},
)

// LedgerOperationDuration measures how long a successful mutation takes from
// service entry to commit.
// Label:
//   - type: "deposit" or "withdraw"
var LedgerOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ledger_operation_duration_seconds",
		Help:      "Duration of ledger mutations from service entry to commit.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"type"},
)

// AuditQueueDepth tracks the number of audit entries waiting in each recorder
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each recorder worker channel.",
	},
	[]string{"worker_id"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsIssuedTotal counts tokens issued at login.
var SessionsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// SessionsRevokedTotal counts tokens explicitly revoked at logout.
var SessionsRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_revoked_total",
		Help:      "Total number of session tokens revoked before natural expiry.",
	},
)

// AuthFailuresTotal counts requests rejected by the auth gateway.
// Label:
//   - reason: "missing_token", "malformed_token", or "token_not_found"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by token validation, by reason.",
	},
	[]string{"reason"},
)
