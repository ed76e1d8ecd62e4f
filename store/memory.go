package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/nik45114/upkeep/types"
)

// Memory is an in-process store implementation.
//
// Task rows live in a concurrent map because the store is shared with the
// rest of the application: the front-end completes tasks while allocation
// or sweep runs are in flight.
type Memory struct {
	tasks *xsync.Map[types.TaskKey, types.MaintenanceTask]

	mu        sync.RWMutex
	staff     []types.StaffMember
	equipment []types.EquipmentUnit
}

var (
	_ types.TaskStore       = (*Memory)(nil)
	_ types.StaffSource     = (*Memory)(nil)
	_ types.EquipmentSource = (*Memory)(nil)
)

// NewMemory creates an empty in-memory store.
//
// Returns:
//   - *Memory: Initialized store with no staff, equipment or tasks
func NewMemory() *Memory {
	return &Memory{
		tasks: xsync.NewMap[types.TaskKey, types.MaintenanceTask](),
	}
}

// SetStaff replaces the staff roster.
func (m *Memory) SetStaff(staff []types.StaffMember) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.staff = append([]types.StaffMember(nil), staff...)
}

// SetEquipment replaces the equipment inventory.
func (m *Memory) SetEquipment(units []types.EquipmentUnit) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.equipment = append([]types.EquipmentUnit(nil), units...)
}

// ListStaff returns a copy of the roster.
func (m *Memory) ListStaff(_ context.Context) ([]types.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]types.StaffMember(nil), m.staff...), nil
}

// ListEquipment returns a copy of the inventory.
func (m *Memory) ListEquipment(_ context.Context) ([]types.EquipmentUnit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]types.EquipmentUnit(nil), m.equipment...), nil
}

// Task returns the row for the key, or types.ErrTaskNotFound.
func (m *Memory) Task(_ context.Context, key types.TaskKey) (*types.MaintenanceTask, error) {
	task, ok := m.tasks.Load(key)
	if !ok {
		return nil, types.ErrTaskNotFound
	}

	return &task, nil
}

// SaveTask inserts or replaces the row identified by task.Key.
func (m *Memory) SaveTask(_ context.Context, task *types.MaintenanceTask) error {
	m.tasks.Store(task.Key, *task)

	return nil
}

// PendingBefore returns pending rows with a due date strictly before the
// cutoff, in task key order for reproducibility.
func (m *Memory) PendingBefore(_ context.Context, cutoff time.Time) ([]*types.MaintenanceTask, error) {
	var rows []*types.MaintenanceTask
	m.tasks.Range(func(_ types.TaskKey, task types.MaintenanceTask) bool {
		if task.Status == types.StatusPending && task.DueDate.Before(cutoff) {
			t := task
			rows = append(rows, &t)
		}

		return true
	})

	sortByKey(rows)

	return rows, nil
}

// TasksForStaff returns the staff member's non-completed rows, due date ascending.
func (m *Memory) TasksForStaff(_ context.Context, staffID string) ([]*types.MaintenanceTask, error) {
	var rows []*types.MaintenanceTask
	m.tasks.Range(func(_ types.TaskKey, task types.MaintenanceTask) bool {
		if task.StaffID == staffID && !task.Completed() {
			t := task
			rows = append(rows, &t)
		}

		return true
	})

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].DueDate.Equal(rows[j].DueDate) {
			return rows[i].DueDate.Before(rows[j].DueDate)
		}

		return rows[i].Key.String() < rows[j].Key.String()
	})

	return rows, nil
}

// Complete marks the row completed with the evidence reference.
//
// Completing an already-completed row is a no-op so a double-tap in the
// front-end cannot overwrite the original evidence.
func (m *Memory) Complete(_ context.Context, key types.TaskKey, evidenceRef string, at time.Time) error {
	task, ok := m.tasks.Load(key)
	if !ok {
		return types.ErrTaskNotFound
	}
	if task.Completed() {
		return nil
	}

	task.Status = types.StatusCompleted
	task.CompletedAt = &at
	task.EvidenceRef = evidenceRef
	m.tasks.Store(key, task)

	return nil
}

// SweepOverdue implements the types.BulkSweeper fast path: one pass over
// the map instead of a list-then-save round trip per row.
func (m *Memory) SweepOverdue(_ context.Context, today time.Time) (int, error) {
	moved := 0
	m.tasks.Range(func(key types.TaskKey, task types.MaintenanceTask) bool {
		if task.Status == types.StatusPending && task.DueDate.Before(today) {
			task.Status = types.StatusOverdue
			m.tasks.Store(key, task)
			moved++
		}

		return true
	})

	return moved, nil
}

func sortByKey(rows []*types.MaintenanceTask) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Key.String() < rows[j].Key.String()
	})
}
