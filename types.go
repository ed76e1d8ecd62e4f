package upkeep

import (
	"time"

	"github.com/nik45114/upkeep/types"
)

// Re-export types from the internal types package.
//
// This file provides a stable public API for the library's core types and
// interfaces. It uses type aliases to re-export definitions from the `types`
// subpackage, which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root `upkeep`
// package, while still providing a convenient `upkeep.Cycle`,
// `upkeep.Logger`, etc. for users.
type (
	Cycle            = types.Cycle
	StaffMember      = types.StaffMember
	ServiceAttribute = types.ServiceAttribute
	EquipmentUnit    = types.EquipmentUnit
	EquipmentType    = types.EquipmentType
	TaskType         = types.TaskType
	MaintenanceTask  = types.MaintenanceTask
	TaskKey          = types.TaskKey
	TaskStatus       = types.TaskStatus
	Outcome          = types.Outcome
	OutcomeCounts    = types.OutcomeCounts
	WeightKey        = types.WeightKey
	ShiftWeights     = types.ShiftWeights
	PartitionID      = types.PartitionID
	PartitionReport  = types.PartitionReport
	AllocationReport = types.AllocationReport
)

// Re-export interfaces from the internal types package for convenience.
type (
	ShiftWeightSource  = types.ShiftWeightSource
	StaffSource        = types.StaffSource
	EquipmentSource    = types.EquipmentSource
	TaskStore          = types.TaskStore
	BulkSweeper        = types.BulkSweeper
	EvidenceStore      = types.EvidenceStore
	AllocationStrategy = types.AllocationStrategy
	MetricsCollector   = types.MetricsCollector
	Logger             = types.Logger
)

// Re-export constants from the internal types package.
const (
	EquipmentWorkstation = types.EquipmentWorkstation
	EquipmentKeyboard    = types.EquipmentKeyboard
	EquipmentMouse       = types.EquipmentMouse

	AttributeHardware   = types.AttributeHardware
	AttributePeripheral = types.AttributePeripheral
	AttributeAny        = types.AttributeAny

	StatusPending   = types.StatusPending
	StatusOverdue   = types.StatusOverdue
	StatusCompleted = types.StatusCompleted

	OutcomeCreated          = types.OutcomeCreated
	OutcomeReassigned       = types.OutcomeReassigned
	OutcomeUnchanged        = types.OutcomeUnchanged
	OutcomeSkippedCompleted = types.OutcomeSkippedCompleted
)

// CycleOf returns the calendar-month cycle containing t. Re-exported for
// callers driving the engine from a scheduler.
func CycleOf(t time.Time) Cycle { return types.CycleOf(t) }
