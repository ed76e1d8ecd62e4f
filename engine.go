package upkeep

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/nik45114/upkeep/internal/logging"
	"github.com/nik45114/upkeep/internal/metrics"
	"github.com/nik45114/upkeep/internal/sitekey"
	"github.com/nik45114/upkeep/strategy"
	"github.com/nik45114/upkeep/types"
)

// Dependencies bundles the external collaborators the Engine requires.
type Dependencies struct {
	// Store holds the maintenance task rows. Required.
	Store types.TaskStore

	// Weights reports per (staff, site) shift counts for a cycle. Required.
	Weights types.ShiftWeightSource

	// Staff lists the roster. Required.
	Staff types.StaffSource

	// Equipment lists the inventory. Required.
	Equipment types.EquipmentSource
}

// Engine runs the monthly allocation pass and the overdue sweep.
//
// The engine is a batch processor: each RunAllocation call fetches the
// roster, inventory and shift weights once, splits the inventory into
// independent (site, equipment type) partitions and reconciles every unit's
// task row for the cycle. Partitions fail independently; the run always
// produces a report.
type Engine struct {
	cfg      Config
	deps     Dependencies
	strategy types.AllocationStrategy
	sites    *sitekey.Normalizer
	logger   types.Logger
	metrics  types.MetricsCollector
	now      func() time.Time
}

// NewEngine creates an allocation engine.
//
// Parameters:
//   - cfg: Engine configuration; missing values take defaults
//   - deps: External collaborators; all four are required
//   - opts: Optional configuration (WithLogger, WithMetrics, WithStrategy, WithClock)
//
// Returns:
//   - *Engine: Initialized engine
//   - error: ErrInvalidConfig or a missing-dependency sentinel
//
// Example:
//
//	cfg := upkeep.DefaultConfig()
//	eng, err := upkeep.NewEngine(&cfg, upkeep.Dependencies{
//	    Store:     taskStore,
//	    Weights:   weightSource,
//	    Staff:     taskStore,
//	    Equipment: taskStore,
//	})
func NewEngine(cfg *Config, deps Dependencies, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if deps.Store == nil {
		return nil, ErrTaskStoreRequired
	}
	if deps.Weights == nil {
		return nil, ErrWeightSourceRequired
	}
	if deps.Staff == nil {
		return nil, ErrStaffSourceRequired
	}
	if deps.Equipment == nil {
		return nil, ErrEquipmentSourceRequired
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	strategyInstance := options.strategy
	if strategyInstance == nil {
		strategyInstance = strategy.NewProportional(strategy.WithProportionalLogger(loggerInstance))
	}

	clock := options.now
	if clock == nil {
		clock = time.Now
	}

	return &Engine{
		cfg:      *cfg,
		deps:     deps,
		strategy: strategyInstance,
		sites:    sitekey.New(cfg.SiteAliases),
		logger:   loggerInstance,
		metrics:  metricsCollector,
		now:      clock,
	}, nil
}

// partition is one independent (site, equipment type) unit group plus the
// task types due for it this cycle.
type partition struct {
	id    types.PartitionID
	units []types.EquipmentUnit
	tasks []types.TaskType
}

// RunAllocation reconciles task rows for every active equipment unit in the
// cycle.
//
// The run fetches roster, inventory and shift weights once, then processes
// each (site, equipment type) partition in deterministic order. A failure in
// one partition never stops the others; per-unit storage errors are recorded
// and skipped. The report is produced even when the run returns an error.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - cycle: Calendar month to allocate for
//
// Returns:
//   - *types.AllocationReport: Per-partition outcome summary, always non-nil
//     unless the roster or inventory fetch failed
//   - error: Roster/inventory fetch failure, or the weight-source failure
//     that skipped all partitions
func (e *Engine) RunAllocation(ctx context.Context, cycle types.Cycle) (*types.AllocationReport, error) {
	start := e.now()

	e.logger.Info("allocation run starting", "cycle", cycle.Key())

	staff, err := e.listStaff(ctx)
	if err != nil {
		e.metrics.RecordAllocationRun(time.Since(start).Seconds(), false)

		return nil, fmt.Errorf("failed to list staff: %w", err)
	}

	units, err := e.listEquipment(ctx)
	if err != nil {
		e.metrics.RecordAllocationRun(time.Since(start).Seconds(), false)

		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	partitions := e.buildPartitions(units, cycle)
	report := &types.AllocationReport{Cycle: cycle}

	weights, weightsErr := e.fetchWeights(ctx, cycle)
	if weightsErr != nil {
		// Weights are fetched once per run; without them every partition
		// is skipped, but the report still names each one.
		e.logger.Error("shift weight source failed, skipping all partitions",
			"cycle", cycle.Key(), "error", weightsErr)
		for _, p := range partitions {
			report.Partitions = append(report.Partitions, types.PartitionReport{
				Partition:  p.id,
				TotalUnits: len(p.units),
				Err:        weightsErr,
			})
		}
		e.metrics.RecordAllocationRun(time.Since(start).Seconds(), false)

		return report, weightsErr
	}

	success := true
	for _, p := range partitions {
		pr := e.runPartition(ctx, p, staff, weights, cycle)
		if pr.Err != nil || len(pr.FailedUnits) > 0 {
			success = false
		}
		report.Partitions = append(report.Partitions, pr)
	}

	totals := report.Totals()
	e.logger.Info("allocation run finished",
		"cycle", cycle.Key(),
		"partitions", len(report.Partitions),
		"created", totals.Created,
		"reassigned", totals.Reassigned,
		"unchanged", totals.Unchanged,
		"skipped", totals.Skipped,
	)
	e.metrics.RecordAllocationRun(time.Since(start).Seconds(), success)

	return report, nil
}

// runPartition allocates and reconciles one (site, equipment type) group.
func (e *Engine) runPartition(
	ctx context.Context,
	p partition,
	staff []types.StaffMember,
	weights types.ShiftWeights,
	cycle types.Cycle,
) types.PartitionReport {
	pr := types.PartitionReport{
		Partition:  p.id,
		TotalUnits: len(p.units),
		Outcomes:   make(map[string]types.OutcomeCounts),
	}

	eligible := e.cfg.Eligibility.EligibleIDs(p.id.Equipment, staff)
	if len(eligible) == 0 {
		pr.UnassignedUnits = len(p.units)
		e.logger.Warn("no eligible staff for partition, units left unassigned",
			"partition", p.id.String(), "units", len(p.units))
		e.metrics.RecordUnassignedUnits(len(p.units))

		return pr
	}

	allocation, err := e.strategy.Allocate(p.units, eligible, weights.ForSite(p.id.Site))
	if err != nil {
		pr.Err = fmt.Errorf("allocation failed for partition %s: %w", p.id, err)
		e.logger.Error("partition allocation failed", "partition", p.id.String(), "error", err)

		return pr
	}

	// Invert staff -> units into unit -> staff for reconciliation order.
	assignee := make(map[string]string, len(p.units))
	for staffID, assigned := range allocation {
		for _, unit := range assigned {
			assignee[unit.ID] = staffID
		}
	}

	failed := make(map[string]bool)
	for _, tt := range p.tasks {
		for _, unit := range p.units {
			staffID, ok := assignee[unit.ID]
			if !ok {
				continue
			}

			outcome, err := e.reconcileUnit(ctx, unit, tt, staffID, cycle)
			if err != nil {
				e.logger.Error("unit reconciliation failed",
					"partition", p.id.String(), "unit", unit.ID, "taskType", tt.ID, "error", err)
				if !failed[unit.ID] {
					failed[unit.ID] = true
					pr.FailedUnits = append(pr.FailedUnits, unit.ID)
				}

				continue
			}

			counts := pr.Outcomes[staffID]
			counts.Add(outcome)
			pr.Outcomes[staffID] = counts
			e.metrics.RecordPartitionOutcome(string(outcome), 1)
		}
	}

	pr.AssignedUnits = pr.TotalUnits - len(pr.FailedUnits)
	if len(pr.FailedUnits) > 0 {
		e.metrics.RecordFailedUnits(len(pr.FailedUnits))
	}

	return pr
}

// buildPartitions groups active units by (canonical site, equipment type)
// and attaches the task types due this cycle. Partitions come back in
// deterministic order: site ascending, equipment ascending.
func (e *Engine) buildPartitions(units []types.EquipmentUnit, cycle types.Cycle) []partition {
	due := make(map[types.EquipmentType][]types.TaskType)
	for _, tt := range e.cfg.TaskTypes {
		if tt.DueInCycle(cycle) {
			due[tt.Equipment] = append(due[tt.Equipment], tt)
		}
	}

	groups := make(map[types.PartitionID][]types.EquipmentUnit)
	for _, unit := range units {
		if !unit.Active {
			continue
		}
		if len(due[unit.Type]) == 0 {
			continue
		}

		id := types.PartitionID{Site: e.sites.Canonical(unit.Site), Equipment: unit.Type}
		groups[id] = append(groups[id], unit)
	}

	partitions := make([]partition, 0, len(groups))
	for id, group := range groups {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Tag != group[j].Tag {
				return group[i].Tag < group[j].Tag
			}

			return group[i].ID < group[j].ID
		})
		partitions = append(partitions, partition{id: id, units: group, tasks: due[id.Equipment]})
	}

	sort.Slice(partitions, func(i, j int) bool {
		if partitions[i].id.Site != partitions[j].id.Site {
			return partitions[i].id.Site < partitions[j].id.Site
		}

		return partitions[i].id.Equipment < partitions[j].id.Equipment
	})

	return partitions
}

func (e *Engine) listStaff(ctx context.Context) ([]types.StaffMember, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.OperationTimeout)
	defer cancel()

	return e.deps.Staff.ListStaff(ctx)
}

func (e *Engine) listEquipment(ctx context.Context) ([]types.EquipmentUnit, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.OperationTimeout)
	defer cancel()

	return e.deps.Equipment.ListEquipment(ctx)
}

func (e *Engine) fetchWeights(ctx context.Context, cycle types.Cycle) (types.ShiftWeights, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.OperationTimeout)
	defer cancel()

	return e.deps.Weights.ShiftWeights(ctx, cycle)
}
