package types

import (
	"context"
	"io"
	"time"
)

// ShiftWeightSource reports how much each staff member worked per site
// during a cycle. Implementations must be pure reads with a bounded-time
// call contract; the engine does not retry.
//
// Implementations include a live pre-aggregated grid (preferred) and a
// local duty-log aggregation (degraded fallback); see the source package.
type ShiftWeightSource interface {
	// ShiftWeights returns the (staff, site) -> shift count map for the
	// cycle's trailing window. An empty map is a valid result and means no
	// recorded shifts, not an error.
	//
	// Parameters:
	//   - ctx: Context for timeout/cancellation
	//   - cycle: Cycle whose trailing window is queried
	//
	// Returns:
	//   - ShiftWeights: Per (staff, site) shift counts (may be empty)
	//   - error: ErrSourceUnavailable (wrapped) when the source is unreachable
	ShiftWeights(ctx context.Context, cycle Cycle) (ShiftWeights, error)
}

// StaffSource lists the staff roster. Read-only to this library.
type StaffSource interface {
	// ListStaff returns all staff records, active and inactive.
	ListStaff(ctx context.Context) ([]StaffMember, error)
}

// EquipmentSource lists the equipment inventory. Read-only to this library.
type EquipmentSource interface {
	// ListEquipment returns all equipment units, active and retired.
	ListEquipment(ctx context.Context) ([]EquipmentUnit, error)
}

// TaskStore provides access to maintenance task rows in the shared store.
//
// The store is shared with the rest of the application; implementations
// must not assume exclusive access. Each method is a single narrow
// operation so the engine can keep its read-modify-write windows small.
type TaskStore interface {
	// Task returns the row for the given key, or ErrTaskNotFound.
	Task(ctx context.Context, key TaskKey) (*MaintenanceTask, error)

	// SaveTask inserts or replaces the row identified by task.Key.
	SaveTask(ctx context.Context, task *MaintenanceTask) error

	// PendingBefore returns all rows with StatusPending whose due date is
	// strictly before the cutoff.
	PendingBefore(ctx context.Context, cutoff time.Time) ([]*MaintenanceTask, error)

	// TasksForStaff returns all non-completed rows assigned to the staff
	// member, ordered by due date ascending. This is the query the
	// messaging front-end uses to render "your tasks".
	TasksForStaff(ctx context.Context, staffID string) ([]*MaintenanceTask, error)

	// Complete marks the row completed with the given evidence reference.
	// Completing an already-completed row is a no-op. Returns
	// ErrTaskNotFound for missing rows.
	Complete(ctx context.Context, key TaskKey, evidenceRef string, at time.Time) error
}

// BulkSweeper is an optional TaskStore capability: a store that can advance
// all past-due pending rows to overdue in a single bulk write. The sweeper
// prefers this path when available (e.g. a single UpdateMany on MongoDB)
// and otherwise falls back to row-at-a-time updates via PendingBefore.
type BulkSweeper interface {
	// SweepOverdue transitions pending rows with due date strictly before
	// today to overdue and returns the number of rows updated.
	SweepOverdue(ctx context.Context, today time.Time) (int, error)
}

// EvidenceStore persists completion evidence (photos) and returns an opaque
// reference suitable for MaintenanceTask.EvidenceRef.
type EvidenceStore interface {
	// PutEvidence stores the object and returns its opaque reference.
	//
	// Parameters:
	//   - ctx: Context for timeout/cancellation
	//   - key: Task the evidence belongs to
	//   - r: Object content
	//   - size: Content length in bytes (-1 if unknown)
	//   - contentType: MIME type (e.g. "image/jpeg")
	PutEvidence(ctx context.Context, key TaskKey, r io.Reader, size int64, contentType string) (string, error)
}

// AllocationStrategy partitions equipment units across eligible staff.
//
// Strategy implementations should:
//   - Be deterministic (same input -> same output)
//   - Handle edge cases (no staff, no units, zero weights)
//   - Be stateless (no side effects)
type AllocationStrategy interface {
	// Allocate distributes units across the eligible staff members.
	//
	// Parameters:
	//   - units: Units of one equipment type at one site
	//   - staff: Eligible staff IDs (eligibility already applied)
	//   - weights: StaffID -> shift weight; staff missing from the map or
	//     with zero weight are covered by the strategy's fallback rules
	//
	// Returns:
	//   - map[string][]EquipmentUnit: StaffID -> assigned units; staff with
	//     zero final allocation are absent from the map
	//   - error: ErrUnitConservation if the result would under/over-assign
	Allocate(units []EquipmentUnit, staff []string, weights map[string]int) (map[string][]EquipmentUnit, error)
}
