// Package upkeep provides a Go library for proportional allocation of
// recurring equipment-maintenance tasks across staff at multiple sites.
//
// Each calendar month the engine distributes the maintenance work for every
// active equipment unit across the staff who actually worked, in proportion
// to their shift counts: a member who worked half the site's shifts services
// half the site's equipment. Allocation is deterministic and idempotent, so
// re-running a month is safe and changes nothing once weights are stable.
//
// # Quick Start
//
// Basic usage with an in-memory store and static weights:
//
//	import (
//	    "github.com/nik45114/upkeep"
//	    "github.com/nik45114/upkeep/source"
//	    "github.com/nik45114/upkeep/store"
//	)
//
//	cfg := upkeep.DefaultConfig()
//	st := store.NewMemory()
//	st.SetStaff(staff)
//	st.SetEquipment(units)
//
//	eng, err := upkeep.NewEngine(&cfg, upkeep.Dependencies{
//	    Store:     st,
//	    Weights:   source.NewStatic(weights),
//	    Staff:     st,
//	    Equipment: st,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := eng.RunAllocation(ctx, upkeep.CycleOf(time.Now()))
//
// # Key Features
//
//   - Proportional Allocation: Floored weight-proportional shares with a
//     deterministic round-robin remainder and a guaranteed minimum of one
//     unit for every member with recorded work
//   - Partition Isolation: Each (site, equipment type) pair allocates
//     independently; one failing partition never blocks the others
//   - Idempotent Reconciliation: Existing rows are reused; a re-run with
//     the same weights performs zero writes
//   - Eligibility Filtering: Per-equipment-type attribute requirements
//     with a wildcard attribute on both sides
//   - Overdue Sweeping: Past-due pending rows advance to overdue, with a
//     bulk fast path for stores that support it
//
// # Architecture
//
// One allocation run is a pure batch pass:
//
//	fetch roster + inventory + weights → partition → filter → allocate → reconcile
//
// Shift weights come from a ShiftWeightSource (live grid, duty-log
// aggregation, or a chain falling back from one to the other). Task rows
// live in a shared TaskStore (in-memory, NATS JetStream KV or MongoDB); the
// messaging front-end reads and completes the same rows.
//
// # Advanced Usage
//
// Custom strategy with options:
//
//	import (
//	    "github.com/nik45114/upkeep"
//	    "github.com/nik45114/upkeep/strategy"
//	)
//
//	eng, err := upkeep.NewEngine(&cfg, deps,
//	    upkeep.WithStrategy(strategy.NewEvenSplit()),
//	    upkeep.WithLogger(logger),
//	    upkeep.WithMetrics(collector),
//	)
//
// See the examples/ directory for complete working examples.
package upkeep
