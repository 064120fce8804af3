package wheel

import (
	"fmt"

	"github.com/lotokit/loto-optimizer/internal/game"
)

// Estimate bounds the ticket count an abbreviated wheel needs, from
// covering design arithmetic. The lower bound is exact; the upper bound
// is a heuristic on greedy behavior.
type Estimate struct {
	KeyNumbers           int   `json:"key_numbers"`
	SubsetsToCover       int64 `json:"subsets_to_cover"`
	MaxCoveragePerTicket int64 `json:"max_coverage_per_ticket"`
	MinTickets           int64 `json:"estimated_min_tickets"`
	MaxTickets           int64 `json:"estimated_max_tickets"`
}

// EstimateCost estimates how many tickets a (nKeys, ifHit, match) wheel
// needs. A single ticket covers at most C(draw_size, match) hit subsets,
// so ceil(C(nKeys, ifHit) / C(draw_size, match)) tickets is a hard lower
// bound. The parameters are validated the same way Builder.Build
// validates them, so an estimate exists only for wheels that could be
// built.
func EstimateCost(cfg game.Config, nKeys, ifHit, match int) (Estimate, error) {
	if err := cfg.Validate(); err != nil {
		return Estimate{}, err
	}
	if nKeys < 1 || nKeys > cfg.PoolSize {
		return Estimate{}, fmt.Errorf(
			"%w: key count %d must be in [1, %d]", ErrInvalidGuarantee, nKeys, cfg.PoolSize)
	}
	if ifHit < 1 || ifHit > nKeys {
		return Estimate{}, fmt.Errorf(
			"%w: if-hit %d must be in [1, %d]", ErrInvalidGuarantee, ifHit, nKeys)
	}
	if match < 1 || match > ifHit {
		return Estimate{}, fmt.Errorf(
			"%w: guarantee match %d must be in [1, %d]", ErrInvalidGuarantee, match, ifHit)
	}
	if match > cfg.DrawSize {
		return Estimate{}, fmt.Errorf(
			"%w: guarantee match %d exceeds draw size %d", ErrInvalidGuarantee, match, cfg.DrawSize)
	}

	subsets := game.Binomial(nKeys, ifHit)
	perTicket := game.Binomial(cfg.DrawSize, match)

	lower := (subsets + perTicket - 1) / perTicket
	if lower < 1 {
		lower = 1
	}
	upper := lower * 4
	if upper > subsets {
		upper = subsets
	}
	return Estimate{
		KeyNumbers:           nKeys,
		SubsetsToCover:       subsets,
		MaxCoveragePerTicket: perTicket,
		MinTickets:           lower,
		MaxTickets:           upper,
	}, nil
}
