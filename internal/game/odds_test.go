package game

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchProbabilityDistribution(t *testing.T) {
	cfg := Default()

	// Jackpot odds are 1 in C(39, 7).
	assert.InDelta(t, 1.0/15380937.0, cfg.MatchProbability(7), 1e-15)

	// Out-of-range match counts are impossible.
	assert.Zero(t, cfg.MatchProbability(-1))
	assert.Zero(t, cfg.MatchProbability(8))

	// The hypergeometric distribution sums to 1 over k = 0..draw.
	total := 0.0
	for k := 0; k <= cfg.DrawSize; k++ {
		total += cfg.MatchProbability(k)
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestMatchProbabilityAtLeast(t *testing.T) {
	cfg := Default()
	assert.InDelta(t, 1.0, cfg.MatchProbabilityAtLeast(0), 1e-12)

	// At-least probabilities are non-increasing in k.
	prev := cfg.MatchProbabilityAtLeast(0)
	for k := 1; k <= cfg.DrawSize; k++ {
		p := cfg.MatchProbabilityAtLeast(k)
		assert.LessOrEqual(t, p, prev)
		prev = p
	}
	assert.InDelta(t, cfg.MatchProbability(7), cfg.MatchProbabilityAtLeast(7), 1e-15)
}

func TestExpectedValue(t *testing.T) {
	// Tiny 2/4 game keeps the arithmetic checkable by hand:
	// C(4,2) = 6 draws, P(match 2) = 1/6, P(match 1) = 4/6.
	cfg := Config{PoolSize: 4, DrawSize: 2}
	prizes := PrizeTable{
		2: decimal.NewFromInt(60),
		1: decimal.NewFromInt(6),
	}
	cost := decimal.NewFromInt(10)

	value := cfg.ExpectedValue(prizes, cost)

	// EV = 60/6 + 6*4/6 = 10 + 4 = 14.
	ev, _ := value.ExpectedValue.Float64()
	assert.InDelta(t, 14.0, ev, 1e-9)
	net, _ := value.NetValue.Float64()
	assert.InDelta(t, 4.0, net, 1e-9)
	assert.InDelta(t, 40.0, value.ROIPercent, 1e-9)

	require.Contains(t, value.Breakdown, 2)
	assert.Equal(t, "1 in 6", value.Breakdown[2].Odds)
}

func TestPortfolioExpectedValue(t *testing.T) {
	cfg := Default()
	prizes := PrizeTable{3: decimal.NewFromInt(200)}
	cost := decimal.NewFromInt(150)

	pv := cfg.PortfolioExpectedValue(prizes, cost, 10)
	assert.Equal(t, 10, pv.Tickets)
	totalCost, _ := pv.TotalCost.Float64()
	assert.InDelta(t, 1500.0, totalCost, 1e-9)

	// With independent tickets, P(any 3+) = 1 - (1 - p)^10.
	p := cfg.MatchProbabilityAtLeast(3)
	want := 1.0
	for i := 0; i < 10; i++ {
		want *= 1 - p
	}
	assert.InDelta(t, 1-want, pv.ProbAny3Plus, 1e-12)
	assert.Greater(t, pv.ProbAny3Plus, pv.ProbAny4Plus)
	assert.Greater(t, pv.ProbAny4Plus, pv.ProbAny5Plus)
}
