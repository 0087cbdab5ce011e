// Package metrics defines and registers all custom Prometheus metrics for the
// chat API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at init, exposed
// through the /metrics endpoint wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chat"

// SignupsTotal counts successful account registrations.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts registered.",
	},
)

// SigninAttemptsTotal counts signin attempts.
// Label:
//   - result: "ok" or "rejected"
var SigninAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_attempts_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests rejected by the bearer-token guard.
// Label:
//   - reason: "missing_header", "expired", "invalid", "unknown_user"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by the authorization guard.",
	},
	[]string{"reason"},
)

// MessagesCreatedTotal counts persisted messages.
// Label:
//   - sender: "user" or "bot"
var MessagesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of messages persisted, by sender role.",
	},
	[]string{"sender"},
)

// MessagesMutatedTotal counts message edits and soft deletions.
// Label:
//   - op: "update" or "delete"
var MessagesMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_mutated_total",
		Help:      "Total number of message mutations, by operation.",
	},
	[]string{"op"},
)

// AuditEventsTotal counts audit events persisted by the background workers.
// Label:
//   - kind: "signup", "signin", "signin_failed"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of auth audit events persisted, by kind.",
	},
	[]string{"kind"},
)

// AuditErrorsTotal counts audit events that failed to persist.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of auth audit events that failed to persist.",
	},
)
