package types

// EquipmentType identifies one entry of the fixed equipment catalog.
type EquipmentType string

// The catalog is fixed: the allocator does not support other equipment types.
const (
	EquipmentWorkstation EquipmentType = "workstation"
	EquipmentKeyboard    EquipmentType = "keyboard"
	EquipmentMouse       EquipmentType = "mouse"
)

// Valid reports whether t is part of the fixed equipment catalog.
func (t EquipmentType) Valid() bool {
	switch t {
	case EquipmentWorkstation, EquipmentKeyboard, EquipmentMouse:
		return true
	default:
		return false
	}
}

// EquipmentUnit is one physical unit of maintainable equipment.
//
// Units are created and retired by the inventory side of the application;
// this library treats them as read-only input.
type EquipmentUnit struct {
	// ID is the stable unit identifier.
	ID string `json:"id" bson:"_id" yaml:"id"`

	// Site is the canonical site key the unit is installed at.
	Site string `json:"site" bson:"site" yaml:"site"`

	// Type is the catalog entry this unit belongs to.
	Type EquipmentType `json:"type" bson:"type" yaml:"type"`

	// Tag is the human-readable inventory tag (e.g. "WS-03"). Units are
	// processed in ascending Tag order to keep allocation reproducible.
	Tag string `json:"tag" bson:"tag" yaml:"tag"`

	// Active indicates whether the unit currently receives maintenance tasks.
	Active bool `json:"active" bson:"active" yaml:"active"`
}

// TaskType is the static recurrence configuration for one equipment type.
type TaskType struct {
	// ID is the stable task type identifier (e.g. "clean-keyboard").
	ID string `json:"id" bson:"_id" yaml:"id"`

	// Equipment is the catalog entry this task type applies to.
	Equipment EquipmentType `json:"equipment" bson:"equipment" yaml:"equipment"`

	// PeriodDays is the recurrence period in days. Allocation runs monthly,
	// so a period of k*30 days means the type participates every k-th cycle.
	PeriodDays int `json:"periodDays" bson:"period_days" yaml:"periodDays"`
}

// CyclePeriod returns the recurrence period expressed in whole cycles
// (calendar months), with a minimum of one cycle.
//
// Returns:
//   - int: max(1, round(PeriodDays/30))
func (tt TaskType) CyclePeriod() int {
	if tt.PeriodDays <= 0 {
		return 1
	}

	cycles := (tt.PeriodDays + 15) / 30
	if cycles < 1 {
		return 1
	}

	return cycles
}

// DueInCycle reports whether this task type participates in the given cycle.
//
// Types with a one-cycle period are due every cycle. Longer periods anchor
// on the cycle index so participation is deterministic across re-runs and
// independent of when the allocator was first deployed.
func (tt TaskType) DueInCycle(c Cycle) bool {
	return c.Index()%tt.CyclePeriod() == 0
}
