package attack

import "sort"

// SortAttackLines returns a new slice with the best attacks first: more stars,
// then higher destruction. Equal attacks keep their input order.
// Pure function: Does not modify input slice, returns new sorted slice
func SortAttackLines(lines []AttackLine) []AttackLine {
	sorted := make([]AttackLine, len(lines))
	copy(sorted, lines)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Stars != sorted[j].Stars {
			return sorted[i].Stars > sorted[j].Stars
		}
		return sorted[i].DestructionPercentage > sorted[j].DestructionPercentage
	})

	return sorted
}
