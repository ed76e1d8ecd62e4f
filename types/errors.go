package types

import "errors"

// Sentinel errors for the upkeep library.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// All components should use these sentinel errors for known error conditions
// and wrap external errors with context using fmt.Errorf("%s: %w", msg, err).

// Engine errors - Public API errors returned by the Engine.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTaskStoreRequired is returned when the task store is nil.
	ErrTaskStoreRequired = errors.New("task store is required")

	// ErrWeightSourceRequired is returned when the shift weight source is nil.
	ErrWeightSourceRequired = errors.New("shift weight source is required")

	// ErrStaffSourceRequired is returned when the staff source is nil.
	ErrStaffSourceRequired = errors.New("staff source is required")

	// ErrEquipmentSourceRequired is returned when the equipment source is nil.
	ErrEquipmentSourceRequired = errors.New("equipment source is required")
)

// Allocation errors - returned by allocation runs and strategies.
var (
	// ErrSourceUnavailable indicates the shift-weight source could not be
	// reached. Affected partitions are skipped for the run, not retried.
	ErrSourceUnavailable = errors.New("shift weight source unavailable")

	// ErrNoEligibleStaff indicates a partition had units but no staff
	// eligible to service its equipment type. Recorded in the report as an
	// unassigned partition rather than raised to the caller.
	ErrNoEligibleStaff = errors.New("no eligible staff")

	// ErrUnitConservation indicates the allocator would have under- or
	// over-assigned units for a partition. This is a defensive invariant
	// check; it signals a bug, not an operational condition.
	ErrUnitConservation = errors.New("assigned unit count does not match input unit count")
)

// Store errors - shared across TaskStore implementations.
var (
	// ErrTaskNotFound is returned when no row exists for a task key.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStaffNotFound is returned when no staff record exists for an ID.
	ErrStaffNotFound = errors.New("staff member not found")
)
