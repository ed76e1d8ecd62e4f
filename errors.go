package upkeep

import "github.com/nik45114/upkeep/types"

// Re-export sentinel errors from the internal types package so callers can
// use errors.Is against the root package without importing types.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = types.ErrInvalidConfig

	// ErrTaskStoreRequired is returned when the task store is nil.
	ErrTaskStoreRequired = types.ErrTaskStoreRequired

	// ErrWeightSourceRequired is returned when the shift weight source is nil.
	ErrWeightSourceRequired = types.ErrWeightSourceRequired

	// ErrStaffSourceRequired is returned when the staff source is nil.
	ErrStaffSourceRequired = types.ErrStaffSourceRequired

	// ErrEquipmentSourceRequired is returned when the equipment source is nil.
	ErrEquipmentSourceRequired = types.ErrEquipmentSourceRequired

	// ErrSourceUnavailable indicates the shift-weight source could not be reached.
	ErrSourceUnavailable = types.ErrSourceUnavailable

	// ErrNoEligibleStaff indicates a partition had units but no eligible staff.
	ErrNoEligibleStaff = types.ErrNoEligibleStaff

	// ErrUnitConservation indicates an allocation would under- or over-assign units.
	ErrUnitConservation = types.ErrUnitConservation

	// ErrTaskNotFound is returned when no row exists for a task key.
	ErrTaskNotFound = types.ErrTaskNotFound

	// ErrStaffNotFound is returned when no staff record exists for an ID.
	ErrStaffNotFound = types.ErrStaffNotFound
)
