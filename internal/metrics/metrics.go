package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes recorded on the pending-action counter. An approval whose change
// could not be applied is recorded as auto_rejected.
const (
	OutcomeSubmitted    = "submitted"
	OutcomeApproved     = "approved"
	OutcomeRejected     = "rejected"
	OutcomeAutoRejected = "auto_rejected"
	OutcomeCancelled    = "cancelled"
	OutcomeConflict     = "conflict"
)

var (
	pendingActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "certhub",
			Name:      "pending_actions_total",
			Help:      "Pending action workflow events by resource type, action type and outcome.",
		},
		[]string{"resource_type", "action_type", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "certhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and status code.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func ObservePendingAction(resourceType, actionType, outcome string) {
	pendingActions.WithLabelValues(resourceType, actionType, outcome).Inc()
}

// PendingActionCounter returns the counter ObservePendingAction increments.
func PendingActionCounter(resourceType, actionType, outcome string) prometheus.Counter {
	return pendingActions.WithLabelValues(resourceType, actionType, outcome)
}

func ObserveRequest(method, route string, status int, seconds float64) {
	requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
