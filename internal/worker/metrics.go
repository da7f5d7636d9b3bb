package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "auction_client"

const (
	outcomeSuccess  = "success"
	outcomeFailure  = "failure"
	outcomeDisabled = "disabled"
	outcomeBusy     = "busy"
)

type Metrics struct {
	cycles       *prometheus.CounterVec
	cycleSeconds *prometheus.HistogramVec
	skipped      *prometheus.CounterVec
	stale        *prometheus.CounterVec
	actions      *prometheus.CounterVec
}

// NewMetrics регистрирует метрики в reg. nil означает собственный реестр,
// не видный снаружи.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	factory := promauto.With(reg)

	return &Metrics{
		cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "poll_cycles_total",
			Help:      "Poll cycles by screen and outcome.",
		}, []string{"screen", "outcome"}),
		cycleSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "poll_cycle_duration_seconds",
			Help:      "Poll cycle duration by screen.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"screen"}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "poll_skipped_total",
			Help:      "Fetches skipped because the resource was already in flight.",
		}, []string{"resource"}),
		stale: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "stale_responses_total",
			Help:      "Responses discarded because a newer snapshot was already applied.",
		}, []string{"resource"}),
		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "actions_total",
			Help:      "User actions by action and outcome.",
		}, []string{"action", "outcome"}),
	}
}
