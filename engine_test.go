package upkeep

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nik45114/upkeep/source"
	"github.com/nik45114/upkeep/store"
	"github.com/nik45114/upkeep/types"
)

var fixedNow = time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)

// failingWeights always reports the source as unreachable.
type failingWeights struct{}

func (failingWeights) ShiftWeights(context.Context, types.Cycle) (types.ShiftWeights, error) {
	return nil, fmt.Errorf("%w: grid api down", types.ErrSourceUnavailable)
}

func keyboards(site string, n int) []types.EquipmentUnit {
	units := make([]types.EquipmentUnit, n)
	for i := range units {
		units[i] = types.EquipmentUnit{
			ID:     fmt.Sprintf("kb-%02d", i+1),
			Site:   site,
			Type:   types.EquipmentKeyboard,
			Tag:    fmt.Sprintf("KB-%02d", i+1),
			Active: true,
		}
	}

	return units
}

func newTestEngine(t *testing.T, st *store.Memory, weights types.ShiftWeights, opts ...Option) *Engine {
	t.Helper()

	cfg := TestConfig()
	cfg.SiteAliases = map[string][]string{"center": {"центр", "tsentr"}}

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	eng, err := NewEngine(&cfg, Dependencies{
		Store:     st,
		Weights:   source.NewStatic(weights),
		Staff:     st,
		Equipment: st,
	}, opts...)
	require.NoError(t, err)

	return eng
}

func TestNewEngine_Validation(t *testing.T) {
	st := store.NewMemory()
	cfg := TestConfig()
	deps := Dependencies{
		Store:     st,
		Weights:   source.NewStatic(nil),
		Staff:     st,
		Equipment: st,
	}

	t.Run("nil config", func(t *testing.T) {
		_, err := NewEngine(nil, deps)
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing task store", func(t *testing.T) {
		d := deps
		d.Store = nil
		_, err := NewEngine(&cfg, d)
		require.ErrorIs(t, err, ErrTaskStoreRequired)
	})

	t.Run("missing weight source", func(t *testing.T) {
		d := deps
		d.Weights = nil
		_, err := NewEngine(&cfg, d)
		require.ErrorIs(t, err, ErrWeightSourceRequired)
	})

	t.Run("missing staff source", func(t *testing.T) {
		d := deps
		d.Staff = nil
		_, err := NewEngine(&cfg, d)
		require.ErrorIs(t, err, ErrStaffSourceRequired)
	})

	t.Run("missing equipment source", func(t *testing.T) {
		d := deps
		d.Equipment = nil
		_, err := NewEngine(&cfg, d)
		require.ErrorIs(t, err, ErrEquipmentSourceRequired)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		bad := TestConfig()
		bad.TaskTypes = []types.TaskType{{ID: "broken", Equipment: "toaster", PeriodDays: 30}}
		_, err := NewEngine(&bad, deps)
		require.Error(t, err)
	})
}

func TestRunAllocation_Proportional(t *testing.T) {
	st := store.NewMemory()
	st.SetStaff([]types.StaffMember{
		{ID: "boris", Name: "Boris", Attribute: types.AttributePeripheral, Active: true},
		{ID: "vera", Name: "Vera", Attribute: types.AttributeAny, Active: true},
		{ID: "dima", Name: "Dima", Attribute: types.AttributePeripheral, Active: true},
	})
	st.SetEquipment(keyboards("center", 10))

	eng := newTestEngine(t, st, types.ShiftWeights{
		{StaffID: "boris", Site: "center"}: 5,
		{StaffID: "vera", Site: "center"}:  3,
		{StaffID: "dima", Site: "center"}:  2,
	})

	cycle := types.Cycle{Year: 2026, Month: time.August}

	report, err := eng.RunAllocation(context.Background(), cycle)
	require.NoError(t, err)
	require.Len(t, report.Partitions, 1)

	pr := report.Partitions[0]
	require.Equal(t, types.PartitionID{Site: "center", Equipment: types.EquipmentKeyboard}, pr.Partition)
	require.Equal(t, 10, pr.TotalUnits)
	require.Equal(t, 10, pr.AssignedUnits)
	require.Zero(t, pr.UnassignedUnits)
	require.Empty(t, pr.FailedUnits)
	require.NoError(t, pr.Err)

	require.Equal(t, 5, pr.Outcomes["boris"].Created)
	require.Equal(t, 3, pr.Outcomes["vera"].Created)
	require.Equal(t, 2, pr.Outcomes["dima"].Created)

	t.Run("rows written with cycle due date", func(t *testing.T) {
		tasks, err := st.TasksForStaff(context.Background(), "boris")
		require.NoError(t, err)
		require.Len(t, tasks, 5)
		for _, task := range tasks {
			require.Equal(t, types.StatusPending, task.Status)
			require.True(t, task.DueDate.Equal(cycle.End()))
			require.True(t, task.AssignedAt.Equal(fixedNow))
			require.Equal(t, "center", task.Site)
		}
	})

	t.Run("re-run is idempotent and write-free", func(t *testing.T) {
		report, err := eng.RunAllocation(context.Background(), cycle)
		require.NoError(t, err)
		require.Len(t, report.Partitions, 1)

		totals := report.Totals()
		require.Zero(t, totals.Created)
		require.Zero(t, totals.Reassigned)
		require.Equal(t, 10, totals.Unchanged)
	})
}

func TestRunAllocation_Reassignment(t *testing.T) {
	ctx := context.Background()
	cycle := types.Cycle{Year: 2026, Month: time.August}

	st := store.NewMemory()
	st.SetStaff([]types.StaffMember{
		{ID: "boris", Attribute: types.AttributePeripheral, Active: true},
		{ID: "vera", Attribute: types.AttributePeripheral, Active: true},
	})
	st.SetEquipment(keyboards("center", 2))

	first := newTestEngine(t, st, types.ShiftWeights{
		{StaffID: "boris", Site: "center"}: 5,
	})
	_, err := first.RunAllocation(ctx, cycle)
	require.NoError(t, err)

	// Boris completes one task before the shift picture changes.
	doneKey := types.TaskKey{UnitID: "kb-01", TaskTypeID: "clean-keyboard", CycleKey: cycle.Key()}
	require.NoError(t, st.Complete(ctx, doneKey, "photos/kb-01", fixedNow))

	// All recent shifts now belong to Vera.
	second := newTestEngine(t, st, types.ShiftWeights{
		{StaffID: "vera", Site: "center"}: 5,
	})
	report, err := second.RunAllocation(ctx, cycle)
	require.NoError(t, err)

	pr := report.Partitions[0]
	require.Equal(t, 1, pr.Outcomes["vera"].Reassigned)
	require.Equal(t, 1, pr.Outcomes["vera"].Skipped, "completed row is never reassigned")

	t.Run("completed row untouched", func(t *testing.T) {
		task, err := st.Task(ctx, doneKey)
		require.NoError(t, err)
		require.Equal(t, types.StatusCompleted, task.Status)
		require.Equal(t, "boris", task.StaffID)
		require.Equal(t, "photos/kb-01", task.EvidenceRef)
	})

	t.Run("reassigned row reset to pending", func(t *testing.T) {
		task, err := st.Task(ctx, types.TaskKey{UnitID: "kb-02", TaskTypeID: "clean-keyboard", CycleKey: cycle.Key()})
		require.NoError(t, err)
		require.Equal(t, "vera", task.StaffID)
		require.Equal(t, types.StatusPending, task.Status)
	})
}

func TestRunAllocation_NoEligibleStaff(t *testing.T) {
	st := store.NewMemory()
	st.SetStaff([]types.StaffMember{
		// Peripheral staff only: nobody may service workstations.
		{ID: "boris", Attribute: types.AttributePeripheral, Active: true},
	})
	st.SetEquipment([]types.EquipmentUnit{
		{ID: "ws-01", Site: "center", Type: types.EquipmentWorkstation, Tag: "WS-01", Active: true},
		{ID: "ws-02", Site: "center", Type: types.EquipmentWorkstation, Tag: "WS-02", Active: true},
	})

	eng := newTestEngine(t, st, types.ShiftWeights{
		{StaffID: "boris", Site: "center"}: 4,
	})

	// September 2026 is a cycle the 60-day workstation task participates in.
	cycle := types.Cycle{Year: 2026, Month: time.September}
	require.True(t, types.TaskType{PeriodDays: 60}.DueInCycle(cycle))

	report, err := eng.RunAllocation(context.Background(), cycle)
	require.NoError(t, err, "unassignable partitions are reported, not raised")
	require.Len(t, report.Partitions, 1)

	pr := report.Partitions[0]
	require.Equal(t, 2, pr.TotalUnits)
	require.Equal(t, 2, pr.UnassignedUnits)
	require.Zero(t, pr.AssignedUnits)
	require.Empty(t, pr.Outcomes)
}

func TestRunAllocation_TaskTypeCadence(t *testing.T) {
	st := store.NewMemory()
	st.SetStaff([]types.StaffMember{
		{ID: "anna", Attribute: types.AttributeHardware, Active: true},
	})
	st.SetEquipment([]types.EquipmentUnit{
		{ID: "ws-01", Site: "center", Type: types.EquipmentWorkstation, Tag: "WS-01", Active: true},
	})

	eng := newTestEngine(t, st, types.ShiftWeights{
		{StaffID: "anna", Site: "center"}: 3,
	})

	offCycle := types.Cycle{Year: 2026, Month: time.August}
	onCycle := types.Cycle{Year: 2026, Month: time.September}
	require.False(t, types.TaskType{PeriodDays: 60}.DueInCycle(offCycle))

	t.Run("off-cycle month produces no workstation partition", func(t *testing.T) {
		report, err := eng.RunAllocation(context.Background(), offCycle)
		require.NoError(t, err)
		require.Empty(t, report.Partitions)
	})

	t.Run("on-cycle month allocates workstations", func(t *testing.T) {
		report, err := eng.RunAllocation(context.Background(), onCycle)
		require.NoError(t, err)
		require.Len(t, report.Partitions, 1)
		require.Equal(t, 1, report.Partitions[0].Outcomes["anna"].Created)
	})
}

func TestRunAllocation_WeightSourceFailure(t *testing.T) {
	st := store.NewMemory()
	st.SetStaff([]types.StaffMember{
		{ID: "boris", Attribute: types.AttributePeripheral, Active: true},
	})
	st.SetEquipment(keyboards("center", 3))

	cfg := TestConfig()
	eng, err := NewEngine(&cfg, Dependencies{
		Store:     st,
		Weights:   failingWeights{},
		Staff:     st,
		Equipment: st,
	})
	require.NoError(t, err)

	report, err := eng.RunAllocation(context.Background(), types.Cycle{Year: 2026, Month: time.August})
	require.ErrorIs(t, err, ErrSourceUnavailable)
	require.NotNil(t, report, "report is produced even when the run fails")
	require.Len(t, report.Partitions, 1)
	require.ErrorIs(t, report.Partitions[0].Err, ErrSourceUnavailable)
	require.Equal(t, []types.PartitionID{{Site: "center", Equipment: types.EquipmentKeyboard}},
		report.FailedPartitions())

	t.Run("no rows written", func(t *testing.T) {
		tasks, err := st.TasksForStaff(context.Background(), "boris")
		require.NoError(t, err)
		require.Empty(t, tasks)
	})
}

func TestRunAllocation_SiteNormalization(t *testing.T) {
	st := store.NewMemory()
	st.SetStaff([]types.StaffMember{
		{ID: "boris", Attribute: types.AttributePeripheral, Active: true},
	})
	st.SetEquipment([]types.EquipmentUnit{
		// Inventory spells the site in Cyrillic; weights use the canonical key.
		{ID: "kb-01", Site: "Центр", Type: types.EquipmentKeyboard, Tag: "KB-01", Active: true},
	})

	eng := newTestEngine(t, st, types.ShiftWeights{
		{StaffID: "boris", Site: "center"}: 2,
	})

	report, err := eng.RunAllocation(context.Background(), types.Cycle{Year: 2026, Month: time.August})
	require.NoError(t, err)
	require.Len(t, report.Partitions, 1)
	require.Equal(t, "center", report.Partitions[0].Partition.Site)
	require.Equal(t, 1, report.Partitions[0].Outcomes["boris"].Created)
}

func TestRunAllocation_PartitionOrderAndIsolation(t *testing.T) {
	st := store.NewMemory()
	st.SetStaff([]types.StaffMember{
		{ID: "boris", Attribute: types.AttributePeripheral, Active: true},
	})
	units := append(keyboards("north", 2), keyboards("center", 2)...)
	// Unique IDs across sites.
	for i := range units {
		units[i].ID = fmt.Sprintf("%s-%s", units[i].Site, units[i].ID)
	}
	st.SetEquipment(units)

	eng := newTestEngine(t, st, types.ShiftWeights{
		{StaffID: "boris", Site: "center"}: 1,
		{StaffID: "boris", Site: "north"}:  1,
	})

	report, err := eng.RunAllocation(context.Background(), types.Cycle{Year: 2026, Month: time.August})
	require.NoError(t, err)
	require.Len(t, report.Partitions, 2)
	require.Equal(t, "center", report.Partitions[0].Partition.Site, "partitions in site order")
	require.Equal(t, "north", report.Partitions[1].Partition.Site)
}

func TestRunAllocation_InactiveUnitsExcluded(t *testing.T) {
	st := store.NewMemory()
	st.SetStaff([]types.StaffMember{
		{ID: "boris", Attribute: types.AttributePeripheral, Active: true},
	})
	units := keyboards("center", 3)
	units[2].Active = false
	st.SetEquipment(units)

	eng := newTestEngine(t, st, types.ShiftWeights{
		{StaffID: "boris", Site: "center"}: 1,
	})

	report, err := eng.RunAllocation(context.Background(), types.Cycle{Year: 2026, Month: time.August})
	require.NoError(t, err)
	require.Len(t, report.Partitions, 1)
	require.Equal(t, 2, report.Partitions[0].TotalUnits)

	_, err = st.Task(context.Background(), types.TaskKey{
		UnitID: "kb-03", TaskTypeID: "clean-keyboard", CycleKey: "2026-08",
	})
	require.ErrorIs(t, err, ErrTaskNotFound)
}
