package metrics

import "github.com/nik45114/upkeep/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// AllocationMetrics implementation

// RecordAllocationRun discards the allocation run metric.
func (n *NopMetrics) RecordAllocationRun(_ /* duration */ float64, _ /* success */ bool) {
	// No-op
}

// RecordPartitionOutcome discards the partition outcome metric.
func (n *NopMetrics) RecordPartitionOutcome(_ /* outcome */ string, _ /* count */ int) {
	// No-op
}

// RecordUnassignedUnits discards the unassigned units metric.
func (n *NopMetrics) RecordUnassignedUnits(_ /* count */ int) {
	// No-op
}

// RecordFailedUnits discards the failed units metric.
func (n *NopMetrics) RecordFailedUnits(_ /* count */ int) {
	// No-op
}

// SweepMetrics implementation

// RecordSweep discards the sweep metric.
func (n *NopMetrics) RecordSweep(_ /* duration */ float64, _ /* transitioned */ int) {
	// No-op
}

// StoreMetrics implementation

// RecordStoreOperationDuration discards the store operation metric.
func (n *NopMetrics) RecordStoreOperationDuration(_ /* operation */ string, _ /* duration */ float64) {
	// No-op
}
