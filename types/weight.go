package types

// WeightKey identifies one (staff member, site) weight entry.
type WeightKey struct {
	StaffID string `json:"staffId"`
	Site    string `json:"site"`
}

// ShiftWeights maps (staff, site) to the number of shifts worked in the
// trailing window. It is an ephemeral, recomputed-per-run value; this
// library never persists it.
type ShiftWeights map[WeightKey]int

// ForSite projects the weights down to a per-staff map for one site.
//
// Parameters:
//   - site: Canonical site key
//
// Returns:
//   - map[string]int: StaffID -> weight for entries at the given site
func (w ShiftWeights) ForSite(site string) map[string]int {
	out := make(map[string]int)
	for k, v := range w {
		if k.Site == site {
			out[k.StaffID] = v
		}
	}

	return out
}

// Total returns the sum of all weights.
func (w ShiftWeights) Total() int {
	total := 0
	for _, v := range w {
		total += v
	}

	return total
}
