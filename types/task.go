package types

import (
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a maintenance task.
//
// State machine: pending -> overdue (sweeper) -> pending (reassignment only)
// and pending|overdue -> completed. Completed is terminal; completed rows are
// never mutated by allocation logic.
type TaskStatus string

const (
	// StatusPending marks a task assigned and not yet due.
	StatusPending TaskStatus = "pending"

	// StatusOverdue marks a pending task whose due date has passed.
	StatusOverdue TaskStatus = "overdue"

	// StatusCompleted marks a finished task. Terminal.
	StatusCompleted TaskStatus = "completed"
)

// TaskKey is the idempotency anchor for a maintenance task: at most one task
// row exists per (equipment unit, task type, cycle).
type TaskKey struct {
	UnitID     string `json:"unitId" bson:"unit_id"`
	TaskTypeID string `json:"taskTypeId" bson:"task_type_id"`
	CycleKey   string `json:"cycleKey" bson:"cycle_key"`
}

// String returns a human-readable "cycle/taskType/unit" rendering for logs.
func (k TaskKey) String() string {
	return strings.Join([]string{k.CycleKey, k.TaskTypeID, k.UnitID}, "/")
}

// MaintenanceTask is one unit of maintenance work: a single obligation for a
// single staff member to service a single equipment unit within one cycle.
//
// Task rows are the interface surface consumed by the messaging front-end:
// it reads pending/overdue rows per staff ID to render task lists and writes
// back completion with an evidence reference.
type MaintenanceTask struct {
	Key TaskKey `json:"key" bson:"key"`

	// StaffID is the currently assigned staff member.
	StaffID string `json:"staffId" bson:"staff_id"`

	// Site is the canonical site key, denormalized for per-site queries.
	Site string `json:"site" bson:"site"`

	// AssignedAt is when the current assignment was made. Reassignment
	// within a cycle updates it.
	AssignedAt time.Time `json:"assignedAt" bson:"assigned_at"`

	// DueDate is the last day of the cycle month.
	DueDate time.Time `json:"dueDate" bson:"due_date"`

	// Status is the lifecycle state.
	Status TaskStatus `json:"status" bson:"status"`

	// CompletedAt is set when the task reaches StatusCompleted.
	CompletedAt *time.Time `json:"completedAt,omitempty" bson:"completed_at,omitempty"`

	// EvidenceRef is an opaque external reference to completion evidence
	// (e.g. an object-store ID for a photo). Written by the front-end.
	EvidenceRef string `json:"evidenceRef,omitempty" bson:"evidence_ref,omitempty"`

	// Notes carries free-form operator or staff notes.
	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Completed reports whether the task is in its terminal state.
func (t *MaintenanceTask) Completed() bool {
	return t.Status == StatusCompleted
}

// Outcome tags the result of reconciling one equipment unit for a cycle.
type Outcome string

const (
	// OutcomeCreated means a new task row was inserted for this cycle.
	OutcomeCreated Outcome = "created"

	// OutcomeReassigned means an existing pending/overdue row moved to a
	// different staff member and was reset to pending.
	OutcomeReassigned Outcome = "reassigned"

	// OutcomeUnchanged means the existing row already named the assignee;
	// nothing was written.
	OutcomeUnchanged Outcome = "unchanged"

	// OutcomeSkippedCompleted means the existing row is completed and was
	// left untouched.
	OutcomeSkippedCompleted Outcome = "skipped-completed"
)
