package strategy

import (
	"fmt"
	"math"
	"sort"

	"github.com/nik45114/upkeep/internal/logging"
	"github.com/nik45114/upkeep/types"
)

// Proportional implements weight-proportional unit allocation.
type Proportional struct {
	logger types.Logger
}

var _ types.AllocationStrategy = (*Proportional)(nil)

// ProportionalOption configures a Proportional strategy.
type ProportionalOption func(*Proportional)

// WithProportionalLogger sets the logger used for allocation diagnostics.
func WithProportionalLogger(logger types.Logger) ProportionalOption {
	return func(p *Proportional) {
		p.logger = logger
	}
}

// NewProportional creates a new proportional allocation strategy.
//
// The strategy distributes units in proportion to shift weights: a staff
// member who worked half the shifts receives half the units, floored to
// whole units, with leftovers handed out round-robin from the top of the
// weight ranking.
//
// Parameters:
//   - opts: Optional configuration (WithProportionalLogger)
//
// Returns:
//   - *Proportional: Initialized proportional strategy
//
// Example:
//
//	strat := strategy.NewProportional()
//	eng, err := upkeep.NewEngine(&cfg, deps, upkeep.WithStrategy(strat))
func NewProportional(opts ...ProportionalOption) *Proportional {
	p := &Proportional{logger: logging.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// rankedStaff is one staff member with their effective weight, in ranking order.
type rankedStaff struct {
	id     string
	weight int
}

// Allocate distributes units across eligible staff in proportion to weights.
//
// The algorithm:
//  1. Keep staff with weight > 0; if none remain but eligible staff exist,
//     treat every eligible member as weight 1 (even-split fallback)
//  2. Sort staff by weight descending, ties broken by staff ID ascending
//  3. Each member's share is floor(weight/totalWeight * totalUnits);
//     a zero share with positive weight is forced to 1, and cumulative
//     shares are capped so they never exceed the unit count
//  4. Units are walked in ascending inventory-tag order and handed out
//     share by share from a single shared cursor
//  5. Leftover units go round-robin, one at a time, restarting from the
//     top of the ranking until exhausted
//
// Parameters:
//   - units: Units of one equipment type at one site
//   - staff: Eligible staff IDs
//   - weights: StaffID -> shift weight for the site
//
// Returns:
//   - map[string][]types.EquipmentUnit: StaffID -> assigned units; exactly
//     len(units) units appear across all values, each exactly once
//   - error: ErrUnitConservation if the final tally does not match the input
func (p *Proportional) Allocate(
	units []types.EquipmentUnit,
	staff []string,
	weights map[string]int,
) (map[string][]types.EquipmentUnit, error) {
	result := make(map[string][]types.EquipmentUnit)
	if len(units) == 0 || len(staff) == 0 {
		return result, nil
	}

	ranked := rankStaff(staff, weights)
	totalUnits := len(units)

	totalWeight := 0
	for _, rs := range ranked {
		totalWeight += rs.weight
	}

	// Proportional pass: floored shares with a forced minimum of one unit
	// for every member with recorded work, capped at the remaining units.
	counts := make([]int, len(ranked))
	assigned := 0
	for i, rs := range ranked {
		share := int(math.Floor(float64(rs.weight) / float64(totalWeight) * float64(totalUnits)))
		if share == 0 && rs.weight > 0 {
			share = 1
		}
		if assigned+share > totalUnits {
			share = totalUnits - assigned
		}
		counts[i] = share
		assigned += share
	}

	// Remainder pass: leftovers from flooring go round-robin from the top.
	for i, extra := range RoundRobinRemainder(len(ranked), totalUnits-assigned) {
		counts[i] += extra
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	if total != totalUnits {
		return nil, fmt.Errorf("%w: partition has %d units, allocated %d",
			types.ErrUnitConservation, totalUnits, total)
	}

	ordered := sortUnits(units)
	cursor := 0
	for i, rs := range ranked {
		if counts[i] == 0 {
			continue
		}
		result[rs.id] = ordered[cursor : cursor+counts[i]]
		cursor += counts[i]
	}

	p.logger.Debug("proportional allocation computed",
		"units", totalUnits,
		"staff", len(ranked),
		"totalWeight", totalWeight,
	)

	return result, nil
}

// rankStaff builds the deterministic allocation ranking.
//
// Staff with positive weight are ranked by weight descending, ties broken by
// ID ascending. When no staff has a positive weight the full eligible list is
// ranked with weight 1 each, so equipment is still assigned when staff exist
// but have no recorded shifts.
func rankStaff(staff []string, weights map[string]int) []rankedStaff {
	ranked := make([]rankedStaff, 0, len(staff))
	for _, id := range staff {
		if w := weights[id]; w > 0 {
			ranked = append(ranked, rankedStaff{id: id, weight: w})
		}
	}

	if len(ranked) == 0 {
		for _, id := range staff {
			ranked = append(ranked, rankedStaff{id: id, weight: 1})
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}

		return ranked[i].id < ranked[j].id
	})

	return ranked
}

// sortUnits returns a copy of units in canonical order: inventory tag
// ascending, ties broken by unit ID.
func sortUnits(units []types.EquipmentUnit) []types.EquipmentUnit {
	ordered := make([]types.EquipmentUnit, len(units))
	copy(ordered, units)

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Tag != ordered[j].Tag {
			return ordered[i].Tag < ordered[j].Tag
		}

		return ordered[i].ID < ordered[j].ID
	})

	return ordered
}
