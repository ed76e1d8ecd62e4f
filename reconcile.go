package upkeep

import (
	"context"
	"errors"
	"fmt"

	"github.com/nik45114/upkeep/types"
)

// reconcileUnit brings one unit's task row for the cycle in line with the
// computed assignment.
//
// The outcome matrix:
//   - no row            -> insert a pending row         (created)
//   - completed row     -> leave untouched              (skipped-completed)
//   - same assignee     -> no write at all              (unchanged)
//   - different staff   -> reassign and reset to pending (reassigned)
//
// The unchanged path writing nothing is what makes same-cycle re-runs
// idempotent: a second run over the same weights is pure reads. An overdue
// row kept by the same assignee stays overdue; only reassignment resets the
// lifecycle.
func (e *Engine) reconcileUnit(
	ctx context.Context,
	unit types.EquipmentUnit,
	taskType types.TaskType,
	staffID string,
	cycle types.Cycle,
) (types.Outcome, error) {
	key := types.TaskKey{UnitID: unit.ID, TaskTypeID: taskType.ID, CycleKey: cycle.Key()}

	existing, err := e.deps.Store.Task(ctx, key)
	switch {
	case errors.Is(err, types.ErrTaskNotFound):
		task := &types.MaintenanceTask{
			Key:        key,
			StaffID:    staffID,
			Site:       e.sites.Canonical(unit.Site),
			AssignedAt: e.now(),
			DueDate:    cycle.End(),
			Status:     types.StatusPending,
		}
		if err := e.deps.Store.SaveTask(ctx, task); err != nil {
			return "", fmt.Errorf("failed to create task %s: %w", key, err)
		}

		return types.OutcomeCreated, nil

	case err != nil:
		return "", fmt.Errorf("failed to read task %s: %w", key, err)
	}

	if existing.Completed() {
		return types.OutcomeSkippedCompleted, nil
	}

	if existing.StaffID == staffID {
		return types.OutcomeUnchanged, nil
	}

	previous := existing.StaffID
	existing.StaffID = staffID
	existing.Status = types.StatusPending
	existing.AssignedAt = e.now()
	if err := e.deps.Store.SaveTask(ctx, existing); err != nil {
		return "", fmt.Errorf("failed to reassign task %s: %w", key, err)
	}

	e.logger.Debug("task reassigned",
		"task", key.String(), "from", previous, "to", staffID)

	return types.OutcomeReassigned, nil
}
