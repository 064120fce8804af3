package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lotokit/loto-optimizer/internal/game"
)

func testScorer() Scorer {
	return NewScorer(game.Default(), DefaultScoreWeights())
}

// wellFormed is a balanced ticket near the expected sum so the balance
// and sum adjustments stay neutral in scorer tests.
var wellFormed = game.Ticket{3, 8, 15, 20, 27, 32, 35} // sum 140, 4 odd

func TestScoreFreshTicketCoversEverything(t *testing.T) {
	scorer := testScorer()
	covered := NewCoverageState()

	// 21 new pairs + 0.3 * 35 new triples, no penalties.
	score := scorer.Score(wellFormed, covered, nil)
	assert.InDelta(t, 21+0.3*35, score, 1e-9)
}

func TestScoreIsPureAndDeterministic(t *testing.T) {
	scorer := testScorer()
	covered := NewCoverageState()
	existing := Portfolio{game.Ticket{1, 2, 3, 4, 5, 6, 7}}

	first := scorer.Score(wellFormed, covered, existing)
	second := scorer.Score(wellFormed, covered, existing)
	assert.Equal(t, first, second)

	// Scoring must not mutate the coverage state.
	assert.Zero(t, covered.PairCount())
	assert.Zero(t, covered.TripleCount())
}

func TestScoreAlreadyCoveredTicket(t *testing.T) {
	scorer := testScorer()
	covered := NewCoverageState()
	covered.Add(wellFormed)

	// Re-scoring the identical ticket: zero new coverage and a duplicate
	// overlap of 7 costs (7-4)*3 = 9.
	score := scorer.Score(wellFormed, covered, Portfolio{wellFormed})
	assert.InDelta(t, -9.0, score, 1e-9)
}

func TestScoreOverlapPenalty(t *testing.T) {
	scorer := testScorer()
	covered := NewCoverageState()

	existing := Portfolio{game.Ticket{3, 8, 15, 20, 27, 36, 38}} // shares 5 with wellFormed
	score := scorer.Score(wellFormed, covered, existing)

	// Full fresh coverage minus (5-4)*3 for the 5-number overlap.
	assert.InDelta(t, 21+0.3*35-3, score, 1e-9)
}

func TestScoreOverlapBelowThresholdIsFree(t *testing.T) {
	scorer := testScorer()
	covered := NewCoverageState()

	existing := Portfolio{game.Ticket{3, 8, 15, 20, 36, 37, 38}} // shares 4
	score := scorer.Score(wellFormed, covered, existing)
	assert.InDelta(t, 21+0.3*35, score, 1e-9)
}

func TestScoreBalancePenalty(t *testing.T) {
	scorer := testScorer()
	covered := NewCoverageState()

	// 7 odd numbers, sum 133 (within tolerance): only the balance
	// penalty applies.
	allOdd := game.Ticket{5, 9, 13, 19, 23, 29, 35}
	score := scorer.Score(allOdd, covered, nil)
	assert.InDelta(t, 21+0.3*35-5, score, 1e-9)
}

func TestScoreSumPenalty(t *testing.T) {
	scorer := testScorer()
	covered := NewCoverageState()

	// Sum 37 deviates from 140 by far more than 30%; 3 odd numbers keep
	// balance neutral.
	low := game.Ticket{1, 2, 3, 4, 5, 10, 12}
	score := scorer.Score(low, covered, nil)
	assert.InDelta(t, 21+0.3*35-3, score, 1e-9)
}

func TestCoverageStateMonotonic(t *testing.T) {
	covered := NewCoverageState()
	cfg := game.Default()

	prev := 0
	tickets := []game.Ticket{
		{1, 2, 3, 4, 5, 6, 7},
		{8, 9, 10, 11, 12, 13, 14},
		{1, 2, 3, 4, 5, 6, 7}, // duplicate adds nothing
	}
	for _, ticket := range tickets {
		covered.Add(ticket)
		assert.GreaterOrEqual(t, covered.PairCount(), prev)
		assert.LessOrEqual(t, int64(covered.PairCount()), cfg.TotalPairs())
		prev = covered.PairCount()
	}
	assert.Equal(t, 42, covered.PairCount())
	assert.Equal(t, 70, covered.TripleCount())
}
