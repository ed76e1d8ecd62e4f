// Package source provides built-in shift-weight source implementations.
//
// Shift-weight sources report how much each staff member worked per site
// during a cycle's trailing window. The package includes:
//
//   - Grid: Pre-aggregated cycle totals from the live schedule grid (preferred)
//   - DutyLog: Local duty-log aggregation with site-key normalization (fallback)
//   - Chain: Primary-then-fallback selection, assembled once at startup
//   - Static: Fixed weights for tests
//
// Custom sources can be implemented by satisfying the
// types.ShiftWeightSource interface.
package source
