package sched

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsObserver exports run-loop activity as Prometheus metrics. It is an
// ordinary Observer; the engine itself never depends on it.
type MetricsObserver struct {
	invocations   prometheus.Counter
	requeues      prometheus.Counter
	finishes      prometheus.Counter
	pendingTasks  prometheus.Gauge
	sleepDuration prometheus.Histogram
}

// NewMetricsObserver registers the scheduler metrics with the given
// registerer. A nil registerer uses the default one.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &MetricsObserver{
		invocations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coopsched",
			Subsystem: "sched",
			Name:      "invocations_total",
			Help:      "Total number of task invocations",
		}),
		requeues: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coopsched",
			Subsystem: "sched",
			Name:      "requeues_total",
			Help:      "Total number of tasks re-queued with a new delay",
		}),
		finishes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "coopsched",
			Subsystem: "sched",
			Name:      "finishes_total",
			Help:      "Total number of tasks that reported done",
		}),
		pendingTasks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "coopsched",
			Subsystem: "sched",
			Name:      "pending_tasks",
			Help:      "Number of tasks currently in the store",
		}),
		sleepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "coopsched",
			Subsystem: "sched",
			Name:      "sleep_duration_seconds",
			Help:      "Length of the sleeps between invocations",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}
}

// Observe implements Observer.
func (m *MetricsObserver) Observe(ev StatusEvent) {
	switch ev.Kind {
	case StatusInvoke:
		m.invocations.Inc()
	case StatusRequeue:
		m.requeues.Inc()
	case StatusFinish:
		m.finishes.Inc()
	case StatusSleep:
		m.sleepDuration.Observe(float64(ev.DelayUS) / 1e6)
	}
	m.pendingTasks.Set(float64(ev.Pending))
}
