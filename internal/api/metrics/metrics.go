// Package metrics defines all custom Prometheus metrics for the shipment
// core API. It is the single source of truth for metric names, labels, and
// help strings; registration happens implicitly via promauto against the
// default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shipment_core"

// ShipmentsCreatedTotal counts newly created shipments.
// Label:
//   - origin: the warehouse/store the shipment originates at
var ShipmentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created, by origin.",
	},
	[]string{"origin"},
)

// TransitionsTotal counts successful lifecycle transitions.
// Label:
//   - status: the status the shipment entered ("in_transit", "delivered")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transitions_total",
		Help:      "Total number of successful shipment status transitions.",
	},
	[]string{"status"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - stage: where the rejection happened ("login")
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts.",
	},
	[]string{"stage"},
)

// AuditQueueDepth tracks the current number of events waiting in each audit
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of transition events pending per audit worker.",
	},
	[]string{"worker_id"},
)

// AuditFailuresTotal counts transition events the audit pipeline failed to
// persist. These never fail the originating request.
var AuditFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_failures_total",
		Help:      "Total number of transition events dropped by the audit pipeline.",
	},
)
