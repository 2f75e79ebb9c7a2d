package program

import (
	"sort"

	"github.com/alexanderramin/repsheet/internal/domain"
)

// Compose projects a session's exercises into render order. Top-level rows
// keep their relative order; each circuit header is followed by its members
// sorted by circuit order (ties keep session order) and each group header by
// its exercises in session order. The input is not modified.
//
// Members whose header is missing from exercises are treated as top-level.
func Compose(exercises []domain.Exercise) []domain.Exercise {
	circuitHeads := make(map[string]bool)
	groupHeads := make(map[string]bool)
	for _, ex := range exercises {
		switch ex.RoleKind() {
		case domain.RoleCircuitHeader:
			circuitHeads[ex.CircuitID()] = true
		case domain.RoleGroupHeader:
			groupHeads[ex.ID] = true
		}
	}

	members := make(map[string][]domain.Exercise)
	grouped := make(map[string][]domain.Exercise)
	var top []domain.Exercise
	for _, ex := range exercises {
		switch {
		case ex.RoleKind() == domain.RoleCircuitMember && circuitHeads[ex.CircuitID()]:
			members[ex.CircuitID()] = append(members[ex.CircuitID()], ex)
		case ex.GroupID() != "" && groupHeads[ex.GroupID()]:
			grouped[ex.GroupID()] = append(grouped[ex.GroupID()], ex)
		default:
			top = append(top, ex)
		}
	}

	out := make([]domain.Exercise, 0, len(exercises))
	for _, ex := range top {
		out = append(out, ex)
		switch ex.RoleKind() {
		case domain.RoleCircuitHeader:
			m := members[ex.CircuitID()]
			sort.SliceStable(m, func(i, j int) bool {
				return m[i].CircuitOrder() < m[j].CircuitOrder()
			})
			out = append(out, m...)
			delete(members, ex.CircuitID())
		case domain.RoleGroupHeader:
			out = append(out, grouped[ex.ID]...)
		}
	}
	return out
}
