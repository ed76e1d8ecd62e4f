package upkeep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nik45114/upkeep/types"
)

// RunOverdueSweep advances every pending task whose due date is strictly
// before today to overdue.
//
// Stores implementing types.BulkSweeper handle the transition as one bulk
// write; otherwise the engine lists past-due rows and updates them one by
// one, continuing past individual failures. The sweep is idempotent: a
// second run on the same day transitions nothing.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - today: Current date; rows due before it become overdue
//
// Returns:
//   - int: Number of rows transitioned to overdue
//   - error: Listing failure, or the joined per-row update failures
func (e *Engine) RunOverdueSweep(ctx context.Context, today time.Time) (int, error) {
	start := e.now()

	transitioned, err := e.sweep(ctx, today)

	e.metrics.RecordSweep(time.Since(start).Seconds(), transitioned)
	if err != nil {
		e.logger.Error("overdue sweep failed", "transitioned", transitioned, "error", err)

		return transitioned, err
	}

	e.logger.Info("overdue sweep finished", "transitioned", transitioned)

	return transitioned, nil
}

func (e *Engine) sweep(ctx context.Context, today time.Time) (int, error) {
	if bulk, ok := e.deps.Store.(types.BulkSweeper); ok {
		count, err := bulk.SweepOverdue(ctx, today)
		if err != nil {
			return 0, fmt.Errorf("bulk overdue sweep failed: %w", err)
		}

		return count, nil
	}

	rows, err := e.deps.Store.PendingBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list past-due tasks: %w", err)
	}

	transitioned := 0
	var errs []error
	for _, row := range rows {
		row.Status = types.StatusOverdue
		if err := e.deps.Store.SaveTask(ctx, row); err != nil {
			errs = append(errs, fmt.Errorf("failed to mark task %s overdue: %w", row.Key, err))

			continue
		}
		transitioned++
	}

	return transitioned, errors.Join(errs...)
}
