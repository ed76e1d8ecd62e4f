package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// All methods must be safe for concurrent use.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	AllocationMetrics
	SweepMetrics
	StoreMetrics
}

// AllocationMetrics defines metrics for allocation runs.
type AllocationMetrics interface {
	// RecordAllocationRun records one full allocation run.
	//
	// Parameters:
	//   - duration: Wall time in seconds
	//   - success: false when any partition failed
	RecordAllocationRun(duration float64, success bool)

	// RecordPartitionOutcome records per-partition reconciliation outcome counts.
	//
	// Parameters:
	//   - outcome: Outcome tag ("created", "reassigned", "unchanged", "skipped-completed")
	//   - count: Number of units with that outcome
	RecordPartitionOutcome(outcome string, count int)

	// RecordUnassignedUnits records units left without a task row for a partition.
	RecordUnassignedUnits(count int)

	// RecordFailedUnits records units whose reconciliation hit a storage error.
	RecordFailedUnits(count int)
}

// SweepMetrics defines metrics for overdue sweeps.
type SweepMetrics interface {
	// RecordSweep records one sweep run.
	//
	// Parameters:
	//   - duration: Wall time in seconds
	//   - transitioned: Rows moved from pending to overdue
	RecordSweep(duration float64, transitioned int)
}

// StoreMetrics defines metrics for shared-store access.
type StoreMetrics interface {
	// RecordStoreOperationDuration records store operation latency.
	//
	// Parameters:
	//   - operation: Operation type ("get", "put", "list", "sweep")
	//   - duration: Time taken in seconds
	RecordStoreOperationDuration(operation string, duration float64)
}
