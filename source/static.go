package source

import (
	"context"
	"sync"

	"github.com/nik45114/upkeep/types"
)

// Static implements a shift-weight source with a fixed weight map.
type Static struct {
	mu      sync.RWMutex
	weights types.ShiftWeights
}

var _ types.ShiftWeightSource = (*Static)(nil)

// NewStatic creates a new static shift-weight source.
//
// The source returns the same weights for every cycle. Useful for testing
// and for deployments where weights are maintained by hand.
//
// Parameters:
//   - weights: Fixed (staff, site) -> shift count map
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic(types.ShiftWeights{
//	    {StaffID: "anna", Site: "center"}: 5,
//	    {StaffID: "boris", Site: "center"}: 3,
//	})
func NewStatic(weights types.ShiftWeights) *Static {
	s := &Static{}
	s.Update(weights)

	return s
}

// ShiftWeights returns a copy of the fixed weight map.
//
// Returns:
//   - types.ShiftWeights: Copy of the configured weights
//   - error: Always nil (never fails)
func (s *Static) ShiftWeights(_ context.Context, _ types.Cycle) (types.ShiftWeights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(types.ShiftWeights, len(s.weights))
	for k, v := range s.weights {
		result[k] = v
	}

	return result, nil
}

// Update replaces the weight map.
//
// This allows the static source to simulate changing shift history, which
// is useful for testing re-run scenarios.
func (s *Static) Update(weights types.ShiftWeights) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.weights = make(types.ShiftWeights, len(weights))
	for k, v := range weights {
		s.weights[k] = v
	}
}
