// Package metrics defines and registers all custom Prometheus metrics for
// the pizza delivery API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pizza"

// OrdersPlacedTotal counts newly placed orders.
// Label:
//   - size: pizza size of the order ("SMALL", "MEDIUM", "LARGE")
var OrdersPlacedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed, by pizza size.",
	},
	[]string{"size"},
)

// StatusTransitionsTotal counts successful order lifecycle transitions.
// Labels:
//   - from: status before the transition
//   - to: status after the transition
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Total number of successful order status transitions.",
	},
	[]string{"from", "to"},
)

// PolicyDenialsTotal counts authorization policy denials.
// Label:
//   - operation: the requested operation (e.g. "get_order_by_id")
var PolicyDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "policy_denials_total",
		Help:      "Total number of requests denied by the authorization policy.",
	},
	[]string{"operation"},
)

// AuthFailuresTotal counts rejected credentials at the auth middleware.
// Label:
//   - reason: "missing", "malformed", "expired", "invalid", "revoked", "wrong_type"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware.",
	},
	[]string{"reason"},
)
