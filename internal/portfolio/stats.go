package portfolio

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/lotokit/loto-optimizer/internal/game"
)

// NumberCount pairs a number with how often the portfolio plays it.
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// Stats is a snapshot of a finished portfolio's coverage and shape. It is
// computed from the tickets alone, so optimized and random portfolios are
// directly comparable.
type Stats struct {
	TotalTickets      int     `json:"total_tickets"`
	UniqueNumbers     int     `json:"unique_numbers"`
	NumberCoveragePct float64 `json:"number_coverage_pct"`

	PairsCovered      int     `json:"pairs_covered"`
	PairsTotal        int64   `json:"pairs_total"`
	PairCoveragePct   float64 `json:"pair_coverage_pct"`
	TriplesCovered    int     `json:"triples_covered"`
	TriplesTotal      int64   `json:"triples_total"`
	TripleCoveragePct float64 `json:"triple_coverage_pct"`

	MinOverlap int     `json:"min_overlap"`
	MaxOverlap int     `json:"max_overlap"`
	AvgOverlap float64 `json:"avg_overlap"`

	NumberFrequency map[int]int `json:"number_frequency"`
	FrequencyStdDev float64     `json:"frequency_std_dev"`
	MostUsed        NumberCount `json:"most_used"`
	LeastUsed       NumberCount `json:"least_used"`
}

// Compute aggregates coverage statistics for a portfolio. It is read-only
// and deterministic: calling it twice on the same portfolio yields
// identical results.
func Compute(cfg game.Config, pf Portfolio) Stats {
	covered := NewCoverageState()
	freq := make(map[int]int)
	for _, t := range pf {
		covered.Add(t)
		for _, n := range t {
			freq[n]++
		}
	}

	stats := Stats{
		TotalTickets:    len(pf),
		UniqueNumbers:   len(freq),
		PairsCovered:    covered.PairCount(),
		PairsTotal:      cfg.TotalPairs(),
		TriplesCovered:  covered.TripleCount(),
		TriplesTotal:    cfg.TotalTriples(),
		NumberFrequency: freq,
	}
	if cfg.PoolSize > 0 {
		stats.NumberCoveragePct = float64(stats.UniqueNumbers) / float64(cfg.PoolSize) * 100
	}
	if stats.PairsTotal > 0 {
		stats.PairCoveragePct = float64(stats.PairsCovered) / float64(stats.PairsTotal) * 100
	}
	if stats.TriplesTotal > 0 {
		stats.TripleCoveragePct = float64(stats.TriplesCovered) / float64(stats.TriplesTotal) * 100
	}

	stats.MinOverlap, stats.MaxOverlap, stats.AvgOverlap = overlapDistribution(pf)
	stats.FrequencyStdDev = frequencyStdDev(freq)
	stats.MostUsed, stats.LeastUsed = usageExtremes(freq)
	return stats
}

// overlapDistribution computes min/max/mean overlap over all ticket pairs.
func overlapDistribution(pf Portfolio) (min, max int, avg float64) {
	var overlaps []float64
	for i := 0; i < len(pf); i++ {
		for j := i + 1; j < len(pf); j++ {
			overlaps = append(overlaps, float64(pf[i].Overlap(pf[j])))
		}
	}
	if len(overlaps) == 0 {
		return 0, 0, 0
	}
	return int(floats.Min(overlaps)), int(floats.Max(overlaps)), stat.Mean(overlaps, nil)
}

// frequencyStdDev is the population standard deviation of the play counts:
// the portfolio is the whole population, not a sample.
func frequencyStdDev(freq map[int]int) float64 {
	if len(freq) == 0 {
		return 0
	}
	counts := make([]float64, 0, len(freq))
	for _, c := range freq {
		counts = append(counts, float64(c))
	}
	return stat.PopStdDev(counts, nil)
}

// usageExtremes finds the most and least played numbers. Ties resolve to
// the lowest number so the result is deterministic.
func usageExtremes(freq map[int]int) (most, least NumberCount) {
	first := true
	for n, c := range freq {
		if first {
			most = NumberCount{Number: n, Count: c}
			least = NumberCount{Number: n, Count: c}
			first = false
			continue
		}
		if c > most.Count || (c == most.Count && n < most.Number) {
			most = NumberCount{Number: n, Count: c}
		}
		if c < least.Count || (c == least.Count && n < least.Number) {
			least = NumberCount{Number: n, Count: c}
		}
	}
	return most, least
}
