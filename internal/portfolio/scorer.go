package portfolio

import (
	"math"

	"github.com/lotokit/loto-optimizer/internal/game"
)

// ScoreWeights tunes the coverage score. The defaults are the empirically
// chosen values the optimizer has always run with; none of them is known
// to be optimal, so they stay configurable.
type ScoreWeights struct {
	// TripleWeight scales new-triple coverage relative to new pairs.
	TripleWeight float64 `yaml:"triple_weight" json:"triple_weight"`
	// OverlapThreshold is the smallest per-ticket overlap that draws a
	// penalty; below it overlap is free.
	OverlapThreshold int `yaml:"overlap_threshold" json:"overlap_threshold"`
	// OverlapFactor is the penalty per overlapping number past the
	// threshold, growing super-linearly with overlap.
	OverlapFactor float64 `yaml:"overlap_factor" json:"overlap_factor"`
	// MinOdd and MaxOdd bound the preferred odd-number count.
	MinOdd int `yaml:"min_odd" json:"min_odd"`
	MaxOdd int `yaml:"max_odd" json:"max_odd"`
	// BalancePenalty is subtracted when the odd count falls outside
	// [MinOdd, MaxOdd].
	BalancePenalty float64 `yaml:"balance_penalty" json:"balance_penalty"`
	// SumTolerance is the allowed relative deviation of the ticket sum
	// from its expectation before SumPenalty applies.
	SumTolerance float64 `yaml:"sum_tolerance" json:"sum_tolerance"`
	SumPenalty   float64 `yaml:"sum_penalty" json:"sum_penalty"`
}

// DefaultScoreWeights returns the standard weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		TripleWeight:     0.3,
		OverlapThreshold: 5,
		OverlapFactor:    3,
		MinOdd:           2,
		MaxOdd:           5,
		BalancePenalty:   5,
		SumTolerance:     0.3,
		SumPenalty:       3,
	}
}

// Scorer computes the desirability of a candidate ticket given what the
// portfolio already covers. Score is pure: identical inputs give an
// identical result and nothing is mutated.
type Scorer struct {
	cfg     game.Config
	weights ScoreWeights
}

// NewScorer builds a scorer for one game configuration.
func NewScorer(cfg game.Config, weights ScoreWeights) Scorer {
	return Scorer{cfg: cfg, weights: weights}
}

// Score returns the coverage score of candidate against the covered
// pair/triple sets and the existing portfolio. Higher is better.
func (s Scorer) Score(candidate game.Ticket, covered *CoverageState, existing Portfolio) float64 {
	score := float64(covered.NewPairs(candidate)) +
		s.weights.TripleWeight*float64(covered.NewTriples(candidate))

	for _, t := range existing {
		overlap := candidate.Overlap(t)
		if overlap >= s.weights.OverlapThreshold {
			score -= float64(overlap-s.weights.OverlapThreshold+1) * s.weights.OverlapFactor
		}
	}

	odd := candidate.OddCount()
	if odd < s.weights.MinOdd || odd > s.weights.MaxOdd {
		score -= s.weights.BalancePenalty
	}

	expected := s.cfg.ExpectedTicketSum()
	if math.Abs(float64(candidate.Sum())-expected)/expected > s.weights.SumTolerance {
		score -= s.weights.SumPenalty
	}

	return score
}
