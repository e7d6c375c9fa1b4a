package ingestion

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the Prometheus collectors for batch ingestion.
type Metrics struct {
	Outcomes      *prometheus.CounterVec
	Rejections    *prometheus.CounterVec
	BatchDuration prometheus.Histogram
	StoreFailures prometheus.Counter
}

// NewMetrics registers the ingestion collectors on reg.
// A nil reg keeps them on a private registry, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		Outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "machine_events_ingested_total",
			Help: "Events processed by outcome (accepted, deduped, updated, rejected)",
		}, []string{"outcome"}),
		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "machine_events_rejections_total",
			Help: "Rejected events by validation reason",
		}, []string{"reason"}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "machine_events_batch_duration_seconds",
			Help:    "Latency of processBatch including store I/O",
			Buckets: prometheus.DefBuckets,
		}),
		StoreFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "machine_events_store_failures_total",
			Help: "Batches that failed because the event store returned an error",
		}),
	}
}

func (m *Metrics) observe(resp *BatchOutcome) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcomeAccepted.String()).Add(float64(resp.Accepted))
	m.Outcomes.WithLabelValues(outcomeDeduped.String()).Add(float64(resp.Deduped))
	m.Outcomes.WithLabelValues(outcomeUpdated.String()).Add(float64(resp.Updated))
	m.Outcomes.WithLabelValues("rejected").Add(float64(resp.Rejected))
	for _, r := range resp.Rejections {
		m.Rejections.WithLabelValues(r.Reason).Inc()
	}
}

func (m *Metrics) storeFailed() {
	if m == nil {
		return
	}
	m.StoreFailures.Inc()
}

// RegisterLockGauge exposes how many event ids currently have a lock holder or waiter.
func RegisterLockGauge(reg prometheus.Registerer, locks interface{ Len() int }) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Name: "machine_events_key_locks_in_flight",
		Help: "Event ids currently held or awaited in the key lock registry",
	}, func() float64 {
		return float64(locks.Len())
	})
}
