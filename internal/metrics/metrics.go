package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	backendRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roomdesk",
			Name:      "backend_request_seconds",
			Help:      "Duration of backend API calls by operation and outcome.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomdesk",
			Name:      "mutation_total",
			Help:      "Count of user-initiated mutations by action and outcome.",
		},
		[]string{"action", "outcome"},
	)

	duplicateSubmits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomdesk",
			Name:      "duplicate_submit_total",
			Help:      "Count of submissions suppressed by the in-flight guard.",
		},
	)

	logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomdesk",
			Name:      "login_total",
			Help:      "Count of login attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(backendRequests, mutations, duplicateSubmits, logins)
	})
}

func ObserveBackendRequest(op, outcome string, d time.Duration) {
	backendRequests.WithLabelValues(op, outcome).Observe(d.Seconds())
}

func IncMutation(action, outcome string) {
	mutations.WithLabelValues(action, outcome).Inc()
}

func IncDuplicateSubmit() {
	duplicateSubmits.Inc()
}

func IncLogin(outcome string) {
	logins.WithLabelValues(outcome).Inc()
}
