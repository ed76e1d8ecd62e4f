// Package strategy provides built-in allocation strategy implementations.
//
// Allocation strategies determine how equipment units are distributed across
// eligible staff. The package includes two built-in strategies:
//
//   - Proportional: Distributes units in proportion to per-staff shift
//     weights, with a largest-remainder-style round-robin for leftovers
//     (recommended; this is the fairness rule the allocator exists for)
//   - EvenSplit: Ignores weights and splits units evenly
//
// # Strategy Selection Guide
//
// Proportional:
//   - Use when shift history is available
//   - Staff who worked more service more equipment
//   - Guarantees at least one unit for every staff member with recorded
//     work, while units remain
//   - Falls back to an even split when no staff has a recorded shift, so
//     equipment is never left unassigned while eligible staff exist
//
// EvenSplit:
//   - Use when shift history is irrelevant or deliberately ignored
//   - Pure equal division with round-robin leftovers
//
// All strategies are deterministic: identical inputs produce identical
// allocation maps across runs and processes.
//
// Custom strategies can be implemented by satisfying the
// types.AllocationStrategy interface.
package strategy
