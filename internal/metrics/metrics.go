package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytgenius_generations_total",
			Help: "Generation requests by task type and outcome",
		},
		[]string{"task_type", "outcome"},
	)

	CoinsDebitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytgenius_coins_debited_total",
			Help: "Coins charged for successful generations",
		},
		[]string{"task_type"},
	)

	ProfilesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ytgenius_profiles_created_total",
			Help: "Balance records created on first access",
		},
	)

	// Best-effort writes that failed after a successful generation.
	SettlementFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytgenius_settlement_failures_total",
			Help: "Failed best-effort writes (history insert, balance update)",
		},
		[]string{"write"},
	)

	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ytgenius_external_call_duration_seconds",
			Help:    "Latency of calls to external collaborators",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collaborator", "outcome"},
	)
)

// ObserveCall records the duration of an external call started at start.
func ObserveCall(collaborator string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ExternalCallDuration.WithLabelValues(collaborator, outcome).Observe(time.Since(start).Seconds())
}
