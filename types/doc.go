// Package types provides core type definitions and interfaces for the upkeep library.
//
// This package contains shared types that are used across multiple packages in the
// upkeep library. By keeping these types in a separate package, we avoid import cycles
// between the main upkeep package and its internal implementations.
//
// Key types:
//   - StaffMember: A worker on the roster with a servicing attribute
//   - EquipmentUnit: A physical unit of maintainable equipment at a site
//   - MaintenanceTask: A single maintenance obligation with a due date
//   - Cycle: The calendar-month recurrence window
//   - ShiftWeights: Per-staff, per-site workload weights for one cycle
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
