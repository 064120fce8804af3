package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PrizeTable maps "numbers matched" to the prize paid for that tier.
type PrizeTable map[int]decimal.Decimal

// MatchProbability is the exact probability of matching exactly k of the
// drawn numbers with one ticket (hypergeometric distribution).
func (c Config) MatchProbability(k int) float64 {
	if k < 0 || k > c.DrawSize {
		return 0
	}
	remaining := c.PoolSize - c.DrawSize
	needed := c.DrawSize - k
	if needed < 0 || needed > remaining {
		return 0
	}
	numerator := Binomial(c.DrawSize, k) * Binomial(remaining, needed)
	return float64(numerator) / float64(c.TotalCombinations())
}

// MatchProbabilityAtLeast is the probability of matching k or more numbers.
func (c Config) MatchProbabilityAtLeast(k int) float64 {
	total := 0.0
	for i := k; i <= c.DrawSize; i++ {
		total += c.MatchProbability(i)
	}
	return total
}

// TierValue is the contribution of one prize tier to a ticket's expected
// value.
type TierValue struct {
	Probability  float64         `json:"probability"`
	Prize        decimal.Decimal `json:"prize"`
	Contribution decimal.Decimal `json:"contribution"`
	Odds         string          `json:"odds"`
}

// TicketValue is the exact expected value of a single ticket against a
// prize table.
type TicketValue struct {
	ExpectedValue decimal.Decimal   `json:"expected_value"`
	TicketCost    decimal.Decimal   `json:"ticket_cost"`
	NetValue      decimal.Decimal   `json:"net_value"`
	ROIPercent    float64           `json:"roi_percent"`
	Breakdown     map[int]TierValue `json:"breakdown"`
}

// ExpectedValue computes the expected value of one ticket. Money is kept
// in decimal form throughout; probabilities are float64.
func (c Config) ExpectedValue(prizes PrizeTable, cost decimal.Decimal) TicketValue {
	ev := decimal.Zero
	breakdown := make(map[int]TierValue, len(prizes))

	for matches, prize := range prizes {
		p := c.MatchProbability(matches)
		contribution := prize.Mul(decimal.NewFromFloat(p))
		ev = ev.Add(contribution)

		odds := "impossible"
		if p > 0 {
			odds = fmt.Sprintf("1 in %.0f", 1/p)
		}
		breakdown[matches] = TierValue{
			Probability:  p,
			Prize:        prize,
			Contribution: contribution,
			Odds:         odds,
		}
	}

	roi := 0.0
	if cost.IsPositive() {
		roi, _ = ev.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100)).Float64()
	}
	return TicketValue{
		ExpectedValue: ev,
		TicketCost:    cost,
		NetValue:      ev.Sub(cost),
		ROIPercent:    roi,
		Breakdown:     breakdown,
	}
}

// PortfolioValue is the expected value of n independent tickets, with the
// probability of at least one ticket reaching common match thresholds.
type PortfolioValue struct {
	Tickets      int             `json:"tickets"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalValue   decimal.Decimal `json:"total_value"`
	NetValue     decimal.Decimal `json:"net_value"`
	ROIPercent   float64         `json:"roi_percent"`
	ProbAny3Plus float64         `json:"prob_any_3plus"`
	ProbAny4Plus float64         `json:"prob_any_4plus"`
	ProbAny5Plus float64         `json:"prob_any_5plus"`
}

// PortfolioExpectedValue computes portfolio-level EV for n tickets. The
// any-k-plus probabilities treat tickets as independent, which slightly
// understates a coverage-optimized portfolio.
func (c Config) PortfolioExpectedValue(prizes PrizeTable, cost decimal.Decimal, n int) PortfolioValue {
	single := c.ExpectedValue(prizes, cost)
	count := decimal.NewFromInt(int64(n))
	totalCost := cost.Mul(count)
	totalValue := single.ExpectedValue.Mul(count)

	roi := 0.0
	if totalCost.IsPositive() {
		roi, _ = totalValue.Sub(totalCost).Div(totalCost).Mul(decimal.NewFromInt(100)).Float64()
	}

	anyAtLeast := func(k int) float64 {
		miss := 1 - c.MatchProbabilityAtLeast(k)
		p := 1.0
		for i := 0; i < n; i++ {
			p *= miss
		}
		return 1 - p
	}

	return PortfolioValue{
		Tickets:      n,
		TotalCost:    totalCost,
		TotalValue:   totalValue,
		NetValue:     totalValue.Sub(totalCost),
		ROIPercent:   roi,
		ProbAny3Plus: anyAtLeast(3),
		ProbAny4Plus: anyAtLeast(4),
		ProbAny5Plus: anyAtLeast(5),
	}
}
