package upkeep

import "time"

// Option configures optional Engine dependencies.
type Option func(*engineOptions)

// engineOptions holds optional dependencies injected via Option functions.
type engineOptions struct {
	logger   Logger
	metrics  MetricsCollector
	strategy AllocationStrategy
	now      func() time.Time
}

// WithLogger sets a custom logger for engine operations.
//
// If not provided, the engine runs silently with a no-op logger.
//
// Parameters:
//   - logger: Logger implementation (see internal/logging for adapters)
//
// Example:
//
//	eng, err := upkeep.NewEngine(&cfg, deps, upkeep.WithLogger(logging.NewSlogDefault()))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a custom metrics collector for observability.
//
// If not provided, metrics collection is disabled (no-op collector).
//
// Parameters:
//   - metrics: MetricsCollector implementation (see internal/metrics)
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithStrategy overrides the allocation strategy.
//
// The default is the weight-proportional strategy. Use strategy.NewEvenSplit
// for plain equal division, or any custom types.AllocationStrategy.
//
// Parameters:
//   - s: Strategy used for every partition
func WithStrategy(s AllocationStrategy) Option {
	return func(o *engineOptions) {
		o.strategy = s
	}
}

// WithClock overrides the engine's notion of "now". Assignment timestamps
// and default sweep cutoffs come from this clock. Intended for tests.
//
// Parameters:
//   - now: Replacement for time.Now
func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) {
		o.now = now
	}
}
