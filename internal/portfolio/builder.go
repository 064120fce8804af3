package portfolio

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lotokit/loto-optimizer/internal/game"
	"github.com/lotokit/loto-optimizer/internal/logger"
)

// DefaultSamples is the Monte Carlo candidate count per greedy step.
const DefaultSamples = 1500

// Builder generates coverage-optimized portfolios with greedy set-cover
// over Monte Carlo candidate samples. The random source is injected so
// callers (and tests) control reproducibility.
type Builder struct {
	cfg    game.Config
	scorer Scorer
	rng    *rand.Rand
}

// NewBuilder validates the game configuration and returns a builder.
func NewBuilder(cfg game.Config, weights ScoreWeights, rng *rand.Rand) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{
		cfg:    cfg,
		scorer: NewScorer(cfg, weights),
		rng:    rng,
	}, nil
}

// Build generates nTickets tickets, picking each as the best of `samples`
// uniform random candidates scored against the coverage accumulated so
// far. samples <= 0 selects DefaultSamples. The greedy step always
// produces a ticket: if no candidate scored (degenerate sample set), a
// plain random ticket is appended instead.
func (b *Builder) Build(nTickets, samples int) (Portfolio, Stats, error) {
	if nTickets < 1 {
		return nil, Stats{}, fmt.Errorf("%w: ticket count %d", game.ErrInvalidGame, nTickets)
	}
	if samples <= 0 {
		samples = DefaultSamples
	}

	logger.Debug("Building coverage-optimized portfolio",
		"tickets", nTickets, "samples", samples, "possible_pairs", b.cfg.TotalPairs())

	covered := NewCoverageState()
	pf := make(Portfolio, 0, nTickets)

	for i := 0; i < nTickets; i++ {
		var best game.Ticket
		bestScore := math.Inf(-1)

		for s := 0; s < samples; s++ {
			candidate := game.RandomTicket(b.cfg, b.rng)
			score := b.scorer.Score(candidate, covered, pf)
			if score > bestScore {
				bestScore = score
				best = candidate
			}
		}
		if best == nil {
			best = game.RandomTicket(b.cfg, b.rng)
		}

		pf = append(pf, best)
		covered.Add(best)
		logger.Debug("Ticket selected", "index", i+1, "ticket", best.String(),
			"pairs_covered", covered.PairCount())
	}

	stats := Compute(b.cfg, pf)
	logger.Info("Portfolio built", "tickets", nTickets,
		"pair_coverage_pct", fmt.Sprintf("%.1f", stats.PairCoveragePct))
	return pf, stats, nil
}

// Random generates nTickets uniform random tickets, the baseline the
// optimized portfolio is compared against.
func (b *Builder) Random(nTickets int) (Portfolio, Stats, error) {
	if nTickets < 1 {
		return nil, Stats{}, fmt.Errorf("%w: ticket count %d", game.ErrInvalidGame, nTickets)
	}
	pf := make(Portfolio, 0, nTickets)
	for i := 0; i < nTickets; i++ {
		pf = append(pf, game.RandomTicket(b.cfg, b.rng))
	}
	return pf, Compute(b.cfg, pf), nil
}
