package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nik45114/upkeep/types"
)

func taskRow(unit, staff string, status types.TaskStatus, due time.Time) *types.MaintenanceTask {
	return &types.MaintenanceTask{
		Key:        types.TaskKey{UnitID: unit, TaskTypeID: "clean-keyboard", CycleKey: "2026-08"},
		StaffID:    staff,
		Site:       "center",
		AssignedAt: due.AddDate(0, 0, -20),
		DueDate:    due,
		Status:     status,
	}
}

func TestMemory_TaskRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	due := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	t.Run("missing row returns ErrTaskNotFound", func(t *testing.T) {
		_, err := m.Task(ctx, types.TaskKey{UnitID: "nope"})
		require.ErrorIs(t, err, types.ErrTaskNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		row := taskRow("kb-01", "anna", types.StatusPending, due)
		require.NoError(t, m.SaveTask(ctx, row))

		got, err := m.Task(ctx, row.Key)
		require.NoError(t, err)
		require.Equal(t, row, got)
	})

	t.Run("load returns a detached copy", func(t *testing.T) {
		row := taskRow("kb-02", "anna", types.StatusPending, due)
		require.NoError(t, m.SaveTask(ctx, row))

		got, _ := m.Task(ctx, row.Key)
		got.StaffID = "mallory"

		again, _ := m.Task(ctx, row.Key)
		require.Equal(t, "anna", again.StaffID)
	})
}

func TestMemory_PendingBefore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	aug31 := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	sep01 := aug31.AddDate(0, 0, 1)

	require.NoError(t, m.SaveTask(ctx, taskRow("kb-01", "anna", types.StatusPending, aug31)))
	require.NoError(t, m.SaveTask(ctx, taskRow("kb-02", "boris", types.StatusCompleted, aug31)))
	require.NoError(t, m.SaveTask(ctx, taskRow("kb-03", "vera", types.StatusOverdue, aug31)))

	t.Run("strictly before cutoff", func(t *testing.T) {
		rows, err := m.PendingBefore(ctx, aug31)
		require.NoError(t, err)
		require.Empty(t, rows, "due date equal to cutoff is not past due")

		rows, err = m.PendingBefore(ctx, sep01)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, "kb-01", rows[0].Key.UnitID)
	})
}

func TestMemory_TasksForStaff(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	aug31 := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.SaveTask(ctx, taskRow("kb-01", "anna", types.StatusPending, aug31)))
	require.NoError(t, m.SaveTask(ctx, taskRow("kb-02", "anna", types.StatusOverdue, aug31.AddDate(0, -1, 0))))
	require.NoError(t, m.SaveTask(ctx, taskRow("kb-03", "anna", types.StatusCompleted, aug31)))
	require.NoError(t, m.SaveTask(ctx, taskRow("kb-04", "boris", types.StatusPending, aug31)))

	rows, err := m.TasksForStaff(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, rows, 2, "completed rows are not listed")
	require.Equal(t, "kb-02", rows[0].Key.UnitID, "earliest due first")
	require.Equal(t, "kb-01", rows[1].Key.UnitID)
}

func TestMemory_Complete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	aug31 := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	row := taskRow("kb-01", "anna", types.StatusPending, aug31)
	require.NoError(t, m.SaveTask(ctx, row))

	done := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

	t.Run("marks completed with evidence", func(t *testing.T) {
		require.NoError(t, m.Complete(ctx, row.Key, "photos/abc123", done))

		got, err := m.Task(ctx, row.Key)
		require.NoError(t, err)
		require.Equal(t, types.StatusCompleted, got.Status)
		require.Equal(t, "photos/abc123", got.EvidenceRef)
		require.NotNil(t, got.CompletedAt)
		require.True(t, got.CompletedAt.Equal(done))
	})

	t.Run("second completion is a no-op", func(t *testing.T) {
		later := done.AddDate(0, 0, 3)
		require.NoError(t, m.Complete(ctx, row.Key, "photos/other", later))

		got, _ := m.Task(ctx, row.Key)
		require.Equal(t, "photos/abc123", got.EvidenceRef, "original evidence preserved")
		require.True(t, got.CompletedAt.Equal(done))
	})

	t.Run("missing row returns ErrTaskNotFound", func(t *testing.T) {
		err := m.Complete(ctx, types.TaskKey{UnitID: "nope"}, "x", done)
		require.ErrorIs(t, err, types.ErrTaskNotFound)
	})
}

func TestMemory_SweepOverdue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	aug31 := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	sep05 := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, m.SaveTask(ctx, taskRow("kb-01", "anna", types.StatusPending, aug31)))
	require.NoError(t, m.SaveTask(ctx, taskRow("kb-02", "boris", types.StatusPending, sep05.AddDate(0, 1, 0))))
	require.NoError(t, m.SaveTask(ctx, taskRow("kb-03", "vera", types.StatusCompleted, aug31)))

	t.Run("moves past-due pending rows", func(t *testing.T) {
		moved, err := m.SweepOverdue(ctx, sep05)
		require.NoError(t, err)
		require.Equal(t, 1, moved)

		got, _ := m.Task(ctx, types.TaskKey{UnitID: "kb-01", TaskTypeID: "clean-keyboard", CycleKey: "2026-08"})
		require.Equal(t, types.StatusOverdue, got.Status)
	})

	t.Run("idempotent on the same day", func(t *testing.T) {
		moved, err := m.SweepOverdue(ctx, sep05)
		require.NoError(t, err)
		require.Zero(t, moved)
	})

	t.Run("completed rows untouched", func(t *testing.T) {
		got, _ := m.Task(ctx, types.TaskKey{UnitID: "kb-03", TaskTypeID: "clean-keyboard", CycleKey: "2026-08"})
		require.Equal(t, types.StatusCompleted, got.Status)
	})
}

func TestMemory_RosterAndInventory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	staff := []types.StaffMember{{ID: "anna", Name: "Anna", Active: true}}
	units := []types.EquipmentUnit{{ID: "kb-01", Site: "center", Type: types.EquipmentKeyboard, Tag: "KB-01", Active: true}}

	m.SetStaff(staff)
	m.SetEquipment(units)

	gotStaff, err := m.ListStaff(ctx)
	require.NoError(t, err)
	require.Equal(t, staff, gotStaff)

	gotUnits, err := m.ListEquipment(ctx)
	require.NoError(t, err)
	require.Equal(t, units, gotUnits)
}
