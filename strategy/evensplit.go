package strategy

import (
	"fmt"
	"sort"

	"github.com/nik45114/upkeep/types"
)

// EvenSplit implements equal-share unit allocation, ignoring weights.
type EvenSplit struct{}

var _ types.AllocationStrategy = (*EvenSplit)(nil)

// NewEvenSplit creates a new even-split strategy.
//
// The strategy divides units equally across eligible staff regardless of
// shift weights, with leftovers handed out round-robin in staff ID order.
// Useful when shift history should be deliberately ignored, e.g. for a
// brand-new site with no recorded shifts.
//
// Returns:
//   - *EvenSplit: Initialized even-split strategy
func NewEvenSplit() *EvenSplit {
	return &EvenSplit{}
}

// Allocate divides units equally across staff in ID order.
//
// Parameters:
//   - units: Units of one equipment type at one site
//   - staff: Eligible staff IDs
//   - weights: Ignored
//
// Returns:
//   - map[string][]types.EquipmentUnit: StaffID -> assigned units
//   - error: ErrUnitConservation on tally mismatch (defensive)
func (e *EvenSplit) Allocate(
	units []types.EquipmentUnit,
	staff []string,
	_ map[string]int,
) (map[string][]types.EquipmentUnit, error) {
	result := make(map[string][]types.EquipmentUnit)
	if len(units) == 0 || len(staff) == 0 {
		return result, nil
	}

	ids := make([]string, len(staff))
	copy(ids, staff)
	sort.Strings(ids)

	totalUnits := len(units)
	base := totalUnits / len(ids)

	counts := make([]int, len(ids))
	for i := range counts {
		counts[i] = base
	}
	for i, extra := range RoundRobinRemainder(len(ids), totalUnits-base*len(ids)) {
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
	for i, id := range ids {
		if counts[i] == 0 {
			continue
		}
		result[id] = ordered[cursor : cursor+counts[i]]
		cursor += counts[i]
	}

	return result, nil
}
