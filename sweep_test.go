package upkeep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nik45114/upkeep/source"
	"github.com/nik45114/upkeep/store"
	"github.com/nik45114/upkeep/types"
)

// fallbackStore hides the Memory store's bulk sweep capability so the
// engine exercises its row-at-a-time fallback.
type fallbackStore struct {
	types.TaskStore
}

func seedSweepStore(t *testing.T) *store.Memory {
	t.Helper()

	st := store.NewMemory()
	ctx := context.Background()
	aug31 := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	rows := []*types.MaintenanceTask{
		{
			Key:     types.TaskKey{UnitID: "kb-01", TaskTypeID: "clean-keyboard", CycleKey: "2026-08"},
			StaffID: "anna", Site: "center", DueDate: aug31, Status: types.StatusPending,
		},
		{
			Key:     types.TaskKey{UnitID: "kb-02", TaskTypeID: "clean-keyboard", CycleKey: "2026-08"},
			StaffID: "boris", Site: "center", DueDate: aug31, Status: types.StatusPending,
		},
		{
			Key:     types.TaskKey{UnitID: "kb-03", TaskTypeID: "clean-keyboard", CycleKey: "2026-09"},
			StaffID: "anna", Site: "center", DueDate: aug31.AddDate(0, 1, 0), Status: types.StatusPending,
		},
		{
			Key:     types.TaskKey{UnitID: "kb-04", TaskTypeID: "clean-keyboard", CycleKey: "2026-08"},
			StaffID: "vera", Site: "center", DueDate: aug31, Status: types.StatusCompleted,
		},
	}
	for _, row := range rows {
		require.NoError(t, st.SaveTask(ctx, row))
	}

	return st
}

func newSweepEngine(t *testing.T, taskStore types.TaskStore) *Engine {
	t.Helper()

	cfg := TestConfig()
	st := store.NewMemory()
	eng, err := NewEngine(&cfg, Dependencies{
		Store:     taskStore,
		Weights:   source.NewStatic(nil),
		Staff:     st,
		Equipment: st,
	})
	require.NoError(t, err)

	return eng
}

func TestRunOverdueSweep(t *testing.T) {
	sep05 := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)

	t.Run("bulk path", func(t *testing.T) {
		st := seedSweepStore(t)
		eng := newSweepEngine(t, st)

		count, err := eng.RunOverdueSweep(context.Background(), sep05)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		got, err := st.Task(context.Background(),
			types.TaskKey{UnitID: "kb-01", TaskTypeID: "clean-keyboard", CycleKey: "2026-08"})
		require.NoError(t, err)
		require.Equal(t, types.StatusOverdue, got.Status)
	})

	t.Run("fallback path without bulk capability", func(t *testing.T) {
		st := seedSweepStore(t)
		eng := newSweepEngine(t, &fallbackStore{TaskStore: st})

		count, err := eng.RunOverdueSweep(context.Background(), sep05)
		require.NoError(t, err)
		require.Equal(t, 2, count)

		got, err := st.Task(context.Background(),
			types.TaskKey{UnitID: "kb-02", TaskTypeID: "clean-keyboard", CycleKey: "2026-08"})
		require.NoError(t, err)
		require.Equal(t, types.StatusOverdue, got.Status)
	})

	t.Run("idempotent on the same day", func(t *testing.T) {
		st := seedSweepStore(t)
		eng := newSweepEngine(t, st)

		_, err := eng.RunOverdueSweep(context.Background(), sep05)
		require.NoError(t, err)

		count, err := eng.RunOverdueSweep(context.Background(), sep05)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("future and completed rows untouched", func(t *testing.T) {
		st := seedSweepStore(t)
		eng := newSweepEngine(t, st)

		_, err := eng.RunOverdueSweep(context.Background(), sep05)
		require.NoError(t, err)

		future, err := st.Task(context.Background(),
			types.TaskKey{UnitID: "kb-03", TaskTypeID: "clean-keyboard", CycleKey: "2026-09"})
		require.NoError(t, err)
		require.Equal(t, types.StatusPending, future.Status)

		completed, err := st.Task(context.Background(),
			types.TaskKey{UnitID: "kb-04", TaskTypeID: "clean-keyboard", CycleKey: "2026-08"})
		require.NoError(t, err)
		require.Equal(t, types.StatusCompleted, completed.Status)
	})

	t.Run("due date equal to today is not overdue", func(t *testing.T) {
		st := seedSweepStore(t)
		eng := newSweepEngine(t, st)

		count, err := eng.RunOverdueSweep(context.Background(),
			time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Zero(t, count)
	})
}
