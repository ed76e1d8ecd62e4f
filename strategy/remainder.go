package strategy

// RoundRobinRemainder distributes remaining units one at a time across a
// ranked staff list, restarting from the top until exhausted.
//
// This is the leftover step of the proportional algorithm, kept as a pure
// function so the off-by-one-prone remainder loop is testable in isolation
// from the share computation.
//
// Parameters:
//   - staffCount: Number of ranked staff members
//   - remaining: Units left after the proportional pass (values <= 0 yield
//     an all-zero delta)
//
// Returns:
//   - []int: Per-rank extra unit counts, index-aligned with the ranking;
//     the values sum to max(remaining, 0) when staffCount > 0
func RoundRobinRemainder(staffCount, remaining int) []int {
	delta := make([]int, staffCount)
	if staffCount == 0 || remaining <= 0 {
		return delta
	}

	for i := 0; i < remaining; i++ {
		delta[i%staffCount]++
	}

	return delta
}
