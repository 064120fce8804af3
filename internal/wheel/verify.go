package wheel

import (
	"github.com/lotokit/loto-optimizer/internal/game"
	"github.com/lotokit/loto-optimizer/internal/portfolio"
)

// Verify exhaustively checks the wheeling guarantee: for every
// combination of ifHit numbers from keys, some ticket must contain at
// least `match` of them. It shares no state with the builder and is the
// authoritative correctness check, O(C(len(keys), ifHit) * len(tickets)).
func Verify(tickets portfolio.Portfolio, keys []int, ifHit, match int) bool {
	for _, subset := range game.Combinations(keys, ifHit) {
		covered := false
		for _, ticket := range tickets {
			hits := 0
			for _, n := range subset {
				if ticket.Contains(n) {
					hits++
				}
			}
			if hits >= match {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
