package source

import (
	"context"
	"fmt"

	"github.com/nik45114/upkeep/internal/logging"
	"github.com/nik45114/upkeep/types"
)

// Chain implements primary-then-fallback shift-weight source selection.
//
// The chain is assembled once at startup instead of scattering availability
// checks through the aggregation code: callers hold a single
// types.ShiftWeightSource and never know which leg answered.
type Chain struct {
	primary  types.ShiftWeightSource
	fallback types.ShiftWeightSource
	logger   types.Logger
}

var _ types.ShiftWeightSource = (*Chain)(nil)

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithChainLogger sets the logger used for degraded-mode warnings.
func WithChainLogger(logger types.Logger) ChainOption {
	return func(c *Chain) {
		c.logger = logger
	}
}

// NewChain creates a chained source: primary first, fallback on failure or
// when the primary has no data.
//
// Parameters:
//   - primary: Preferred source (typically the live grid)
//   - fallback: Degraded source (typically the local duty log); may be nil
//   - opts: Optional configuration (WithChainLogger)
//
// Returns:
//   - *Chain: Initialized chained source
//
// Example:
//
//	src := source.NewChain(
//	    source.NewGrid(gridClient, aliases),
//	    source.NewDutyLog(logReader, 30, aliases),
//	)
func NewChain(primary, fallback types.ShiftWeightSource, opts ...ChainOption) *Chain {
	c := &Chain{
		primary:  primary,
		fallback: fallback,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// ShiftWeights queries the primary source and falls back when it fails or
// returns nothing.
//
// An empty map from both legs is a valid result (no recorded shifts); the
// allocator handles it through its even-split fallback. An error is
// returned only when every available leg failed.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - cycle: Cycle being allocated
//
// Returns:
//   - types.ShiftWeights: Weights from the first leg with data (may be empty)
//   - error: Wrapped ErrSourceUnavailable when all legs failed
func (c *Chain) ShiftWeights(ctx context.Context, cycle types.Cycle) (types.ShiftWeights, error) {
	weights, primaryErr := c.primary.ShiftWeights(ctx, cycle)
	if primaryErr == nil && len(weights) > 0 {
		return weights, nil
	}

	if c.fallback == nil {
		if primaryErr != nil {
			return nil, primaryErr
		}

		return weights, nil
	}

	if primaryErr != nil {
		c.logger.Warn("primary shift source failed, using fallback",
			"cycle", cycle.Key(),
			"error", primaryErr,
		)
	} else {
		c.logger.Debug("primary shift source empty, consulting fallback", "cycle", cycle.Key())
	}

	fallbackWeights, fallbackErr := c.fallback.ShiftWeights(ctx, cycle)
	if fallbackErr != nil {
		if primaryErr != nil {
			return nil, fmt.Errorf("%w: primary and fallback failed: %v; %v",
				types.ErrSourceUnavailable, primaryErr, fallbackErr)
		}

		return nil, fallbackErr
	}

	return fallbackWeights, nil
}
