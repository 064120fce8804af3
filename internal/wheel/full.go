package wheel

import (
	"fmt"

	"github.com/lotokit/loto-optimizer/internal/game"
	"github.com/lotokit/loto-optimizer/internal/portfolio"
)

// DefaultFullWheelLimit caps full wheel output. C(15, 7) = 6435 already
// takes the cap far past sensible play; the limit is on tickets, not key
// count.
const DefaultFullWheelLimit = 500

// FullWheel enumerates every C(len(keys), draw_size) combination of the
// key numbers as a ticket: if all drawn numbers are among the keys, the
// jackpot combination is in the wheel verbatim. maxCombinations <= 0
// selects DefaultFullWheelLimit; exceeding it is an error, not a
// truncation.
func FullWheel(cfg game.Config, keys []int, maxCombinations int64) (portfolio.Portfolio, GuaranteeReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, GuaranteeReport{}, err
	}
	keys, err := validateKeys(cfg, keys)
	if err != nil {
		return nil, GuaranteeReport{}, err
	}
	if len(keys) < cfg.DrawSize {
		return nil, GuaranteeReport{}, fmt.Errorf(
			"%w: need at least %d key numbers, got %d",
			ErrInvalidGuarantee, cfg.DrawSize, len(keys))
	}
	if maxCombinations <= 0 {
		maxCombinations = DefaultFullWheelLimit
	}
	count := game.Binomial(len(keys), cfg.DrawSize)
	if count > maxCombinations {
		return nil, GuaranteeReport{}, fmt.Errorf(
			"%w: %d tickets exceeds limit %d; use an abbreviated wheel or fewer key numbers",
			ErrTooManyCombinations, count, maxCombinations)
	}

	tickets := make(portfolio.Portfolio, 0, count)
	for _, combo := range game.Combinations(keys, cfg.DrawSize) {
		tickets = append(tickets, game.Ticket(combo))
	}

	report := GuaranteeReport{
		Type:           "full",
		KeyNumbers:     keys,
		Tickets:        len(tickets),
		GuaranteeIfHit: cfg.DrawSize,
		GuaranteeMatch: cfg.DrawSize,
		Statement: fmt.Sprintf(
			"If all %d winning numbers are among your %d key numbers, the jackpot ticket is in the wheel.",
			cfg.DrawSize, len(keys)),
		SubsetsTotal:   len(tickets),
		SubsetsCovered: len(tickets),
		CoveragePct:    100,
		Verified:       true,
	}
	return tickets, report, nil
}
