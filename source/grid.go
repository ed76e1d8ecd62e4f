package source

import (
	"context"
	"fmt"

	"github.com/nik45114/upkeep/internal/sitekey"
	"github.com/nik45114/upkeep/types"
)

// GridClient is the contract for the live schedule grid collaborator.
//
// The grid pre-aggregates shifts per staff member per site, so the source
// only needs to normalize site names. Implementations are expected to
// honor context deadlines; the engine never retries a failed read.
type GridClient interface {
	// CycleTotals returns cycle-to-date shift totals keyed by raw
	// (staff ID, site name as spelled in the grid).
	CycleTotals(ctx context.Context, cycle types.Cycle) (map[types.WeightKey]int, error)
}

// Grid implements types.ShiftWeightSource on top of the live schedule grid.
type Grid struct {
	client GridClient
	sites  *sitekey.Normalizer
}

var _ types.ShiftWeightSource = (*Grid)(nil)

// NewGrid creates the preferred, grid-backed shift-weight source.
//
// Parameters:
//   - client: Schedule grid collaborator
//   - siteAliases: Canonical site key -> accepted alternate spellings
//
// Returns:
//   - *Grid: Initialized grid source
func NewGrid(client GridClient, siteAliases map[string][]string) *Grid {
	return &Grid{
		client: client,
		sites:  sitekey.New(siteAliases),
	}
}

// ShiftWeights fetches cycle totals from the grid and folds site spellings
// onto canonical keys.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - cycle: Cycle being allocated
//
// Returns:
//   - types.ShiftWeights: Per (staff, canonical site) shift counts
//   - error: Wrapped ErrSourceUnavailable when the grid is unreachable
func (g *Grid) ShiftWeights(ctx context.Context, cycle types.Cycle) (types.ShiftWeights, error) {
	totals, err := g.client.CycleTotals(ctx, cycle)
	if err != nil {
		return nil, fmt.Errorf("%w: grid: %v", types.ErrSourceUnavailable, err)
	}

	weights := make(types.ShiftWeights, len(totals))
	for key, count := range totals {
		if count <= 0 {
			continue
		}
		canonical := types.WeightKey{StaffID: key.StaffID, Site: g.sites.Canonical(key.Site)}
		weights[canonical] += count
	}

	return weights, nil
}
