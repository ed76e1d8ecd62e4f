package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nik45114/upkeep/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	runDuration     *prometheus.HistogramVec
	runTotal        *prometheus.CounterVec
	outcomeTotal    *prometheus.CounterVec
	unassignedUnits prometheus.Counter
	failedUnits     prometheus.Counter
	sweepDuration   prometheus.Histogram
	sweepMoved      prometheus.Counter
	storeOpDuration *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "upkeep" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "upkeep"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.runDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "run_duration_seconds",
			Help:      "Duration of full allocation runs in seconds by result.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"result"})

		p.runTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "runs_total",
			Help:      "Total allocation runs by result (success|partial_failure).",
		}, []string{"result"})

		p.outcomeTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "unit_outcomes_total",
			Help:      "Total per-unit reconciliation outcomes by tag.",
		}, []string{"outcome"})

		p.unassignedUnits = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "unassigned_units_total",
			Help:      "Units left without a task row because no eligible staff existed.",
		})

		p.failedUnits = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "allocation",
			Name:      "failed_units_total",
			Help:      "Units whose reconciliation failed with a storage error.",
		})

		p.sweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "sweep",
			Name:      "duration_seconds",
			Help:      "Duration of overdue sweeps in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		})

		p.sweepMoved = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "sweep",
			Name:      "transitioned_total",
			Help:      "Total rows moved from pending to overdue by the sweeper.",
		})

		p.storeOpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Latency of shared-store operations in seconds by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~4s
		}, []string{"op"})

		p.reg.MustRegister(p.runDuration)
		p.reg.MustRegister(p.runTotal)
		p.reg.MustRegister(p.outcomeTotal)
		p.reg.MustRegister(p.unassignedUnits)
		p.reg.MustRegister(p.failedUnits)
		p.reg.MustRegister(p.sweepDuration)
		p.reg.MustRegister(p.sweepMoved)
		p.reg.MustRegister(p.storeOpDuration)
	})
}

// AllocationMetrics implementation

// RecordAllocationRun records one full allocation run.
func (p *PrometheusCollector) RecordAllocationRun(duration float64, success bool) {
	p.ensureRegistered()
	result := "success"
	if !success {
		result = "partial_failure"
	}
	p.runDuration.WithLabelValues(result).Observe(duration)
	p.runTotal.WithLabelValues(result).Inc()
}

// RecordPartitionOutcome adds per-unit outcome counts for a partition.
func (p *PrometheusCollector) RecordPartitionOutcome(outcome string, count int) {
	p.ensureRegistered()
	p.outcomeTotal.WithLabelValues(outcome).Add(float64(count))
}

// RecordUnassignedUnits adds units left without a task row.
func (p *PrometheusCollector) RecordUnassignedUnits(count int) {
	p.ensureRegistered()
	p.unassignedUnits.Add(float64(count))
}

// RecordFailedUnits adds units whose reconciliation failed.
func (p *PrometheusCollector) RecordFailedUnits(count int) {
	p.ensureRegistered()
	p.failedUnits.Add(float64(count))
}

// SweepMetrics implementation

// RecordSweep records one sweep run.
func (p *PrometheusCollector) RecordSweep(duration float64, transitioned int) {
	p.ensureRegistered()
	p.sweepDuration.Observe(duration)
	p.sweepMoved.Add(float64(transitioned))
}

// StoreMetrics implementation

// RecordStoreOperationDuration observes store operation latency.
func (p *PrometheusCollector) RecordStoreOperationDuration(operation string, duration float64) {
	p.ensureRegistered()
	p.storeOpDuration.WithLabelValues(operation).Observe(duration)
}
