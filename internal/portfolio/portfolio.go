// Package portfolio builds and analyzes sets of lottery tickets that
// maximize pairwise and triple number coverage. Construction is a greedy
// set-cover loop over Monte Carlo candidate samples; scoring is pure so
// candidates can be evaluated independently of the sampler.
package portfolio

import (
	"github.com/lotokit/loto-optimizer/internal/game"
)

// Portfolio is an ordered set of tickets. Order is generation order and
// only matters for display. Duplicate tickets are permitted (the scorer
// penalizes them heavily) so membership is not an invariant.
type Portfolio []game.Ticket

// Numbers returns the distinct numbers used across the portfolio, as a
// presence set.
func (p Portfolio) Numbers() map[int]bool {
	used := make(map[int]bool)
	for _, t := range p {
		for _, n := range t {
			used[n] = true
		}
	}
	return used
}

// CoverageState accumulates the pairs and triples covered by accepted
// tickets during greedy construction. It only ever grows.
type CoverageState struct {
	pairs   map[game.Pair]struct{}
	triples map[game.Triple]struct{}
}

// NewCoverageState returns an empty coverage state.
func NewCoverageState() *CoverageState {
	return &CoverageState{
		pairs:   make(map[game.Pair]struct{}),
		triples: make(map[game.Triple]struct{}),
	}
}

// Add marks every pair and triple on t as covered.
func (s *CoverageState) Add(t game.Ticket) {
	for _, p := range t.Pairs() {
		s.pairs[p] = struct{}{}
	}
	for _, tr := range t.Triples() {
		s.triples[tr] = struct{}{}
	}
}

// NewPairs counts pairs on t not yet covered.
func (s *CoverageState) NewPairs(t game.Ticket) int {
	count := 0
	for _, p := range t.Pairs() {
		if _, ok := s.pairs[p]; !ok {
			count++
		}
	}
	return count
}

// NewTriples counts triples on t not yet covered.
func (s *CoverageState) NewTriples(t game.Ticket) int {
	count := 0
	for _, tr := range t.Triples() {
		if _, ok := s.triples[tr]; !ok {
			count++
		}
	}
	return count
}

// PairCount returns how many pairs are covered so far.
func (s *CoverageState) PairCount() int {
	return len(s.pairs)
}

// TripleCount returns how many triples are covered so far.
func (s *CoverageState) TripleCount() int {
	return len(s.triples)
}
