package types

import (
	"fmt"
	"time"
)

// Cycle is the fixed recurrence window: one calendar month.
//
// Exactly one task row per (equipment unit, task type) should exist within a
// cycle; the cycle key is part of the task row's idempotency anchor.
type Cycle struct {
	Year  int        `json:"year" yaml:"year"`
	Month time.Month `json:"month" yaml:"month"`
}

// CycleOf returns the cycle containing the given instant.
func CycleOf(t time.Time) Cycle {
	return Cycle{Year: t.Year(), Month: t.Month()}
}

// Key returns the canonical "YYYY-MM" cycle key used in task row identity.
//
// Returns:
//   - string: Zero-padded cycle key, e.g. "2026-08"
func (c Cycle) Key() string {
	return fmt.Sprintf("%04d-%02d", c.Year, int(c.Month))
}

// Start returns midnight UTC on the first day of the cycle month.
func (c Cycle) Start() time.Time {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the cycle month (midnight UTC).
//
// Task due dates are always the cycle end, keeping due dates inside the
// same calendar cycle as the assignment date.
func (c Cycle) End() time.Time {
	return c.Start().AddDate(0, 1, -1)
}

// Index returns the number of whole months since January of year zero.
// Used for recurrence cadence math (e.g. every second cycle).
func (c Cycle) Index() int {
	return c.Year*12 + int(c.Month) - 1
}

// Next returns the cycle immediately following c.
func (c Cycle) Next() Cycle {
	if c.Month == time.December {
		return Cycle{Year: c.Year + 1, Month: time.January}
	}

	return Cycle{Year: c.Year, Month: c.Month + 1}
}

// Contains reports whether the instant falls inside the cycle month.
func (c Cycle) Contains(t time.Time) bool {
	return t.Year() == c.Year && t.Month() == c.Month
}
