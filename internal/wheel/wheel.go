// Package wheel implements lottery wheeling: constructing ticket sets
// over a player's key numbers that carry a provable partial-match
// guarantee. The abbreviated builder is a greedy set cover over random
// candidates; Verify is the independent exhaustive oracle the final
// verdict always comes from.
package wheel

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/lotokit/loto-optimizer/internal/game"
	"github.com/lotokit/loto-optimizer/internal/logger"
	"github.com/lotokit/loto-optimizer/internal/portfolio"
)

var (
	// ErrInvalidGuarantee indicates inconsistent wheel parameters.
	ErrInvalidGuarantee = errors.New("invalid wheel guarantee")
	// ErrTooManyCombinations indicates a full wheel would exceed the
	// ticket safety cap.
	ErrTooManyCombinations = errors.New("too many wheel combinations")
)

// DefaultMaxTickets bounds abbreviated wheel construction.
const DefaultMaxTickets = 50

// GuaranteeReport describes what a generated wheel promises. Verified
// comes from the exhaustive verifier, never from construction
// bookkeeping.
type GuaranteeReport struct {
	Type            string  `json:"type"` // "abbreviated" or "full"
	KeyNumbers      []int   `json:"key_numbers"`
	Tickets         int     `json:"tickets"`
	GuaranteeIfHit  int     `json:"guarantee_if_hit"`
	GuaranteeMatch  int     `json:"guarantee_match"`
	Statement       string  `json:"statement"`
	SubsetsTotal    int     `json:"subsets_total"`
	SubsetsCovered  int     `json:"subsets_covered"`
	CoveragePct     float64 `json:"coverage_pct"`
	Verified        bool    `json:"verified"`
	UncoveredLeft   int     `json:"uncovered_remaining"`
	Warning         string  `json:"warning,omitempty"`
}

// Builder constructs abbreviated wheels for one game configuration.
type Builder struct {
	cfg game.Config
	rng *rand.Rand
}

// NewBuilder validates the game configuration and returns a wheel builder.
func NewBuilder(cfg game.Config, rng *rand.Rand) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg, rng: rng}, nil
}

// validateKeys checks the key numbers against the game: in range,
// distinct. Returns a sorted copy.
func validateKeys(cfg game.Config, keys []int) ([]int, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: no key numbers", ErrInvalidGuarantee)
	}
	sorted := make([]int, len(keys))
	copy(sorted, keys)
	sort.Ints(sorted)
	for i, n := range sorted {
		if n < 1 || n > cfg.PoolSize {
			return nil, fmt.Errorf("%w: key number %d out of range [1, %d]",
				ErrInvalidGuarantee, n, cfg.PoolSize)
		}
		if i > 0 && sorted[i-1] == n {
			return nil, fmt.Errorf("%w: duplicate key number %d", ErrInvalidGuarantee, n)
		}
	}
	return sorted, nil
}

// Build constructs an abbreviated wheel over keys: if ifHit of the keys
// are drawn, at least one ticket matches at least `match` of them.
// maxTickets <= 0 selects DefaultMaxTickets. Stopping at maxTickets
// before full coverage is not an error; the report carries
// Verified=false and the remaining uncovered subset count.
//
// Tickets are not de-duplicated: the fallback path can repeat an earlier
// ticket when fill numbers collide, and the wheel keeps it.
func (b *Builder) Build(keys []int, ifHit, match, maxTickets int) (portfolio.Portfolio, GuaranteeReport, error) {
	keys, err := validateKeys(b.cfg, keys)
	if err != nil {
		return nil, GuaranteeReport{}, err
	}
	if len(keys) < ifHit {
		return nil, GuaranteeReport{}, fmt.Errorf(
			"%w: need at least %d key numbers, got %d", ErrInvalidGuarantee, ifHit, len(keys))
	}
	if match < 1 || match > ifHit {
		return nil, GuaranteeReport{}, fmt.Errorf(
			"%w: guarantee match %d must be in [1, %d]", ErrInvalidGuarantee, match, ifHit)
	}
	if match > b.cfg.DrawSize {
		return nil, GuaranteeReport{}, fmt.Errorf(
			"%w: guarantee match %d exceeds draw size %d", ErrInvalidGuarantee, match, b.cfg.DrawSize)
	}
	if maxTickets <= 0 {
		maxTickets = DefaultMaxTickets
	}

	hitSubsets := game.Combinations(keys, ifHit)
	uncovered := make(map[int]struct{}, len(hitSubsets))
	for i := range hitSubsets {
		uncovered[i] = struct{}{}
	}

	logger.Debug("Building abbreviated wheel", "keys", len(keys),
		"if_hit", ifHit, "match", match, "subsets", len(hitSubsets))

	others := make([]int, 0, b.cfg.PoolSize-len(keys))
	keySet := make(map[int]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}
	for n := 1; n <= b.cfg.PoolSize; n++ {
		if !keySet[n] {
			others = append(others, n)
		}
	}

	tickets := make(portfolio.Portfolio, 0, maxTickets)
	for len(uncovered) > 0 && len(tickets) < maxTickets {
		best, covered := b.bestCandidate(keys, others, hitSubsets, uncovered, match)
		if best == nil || len(covered) == 0 {
			best, covered = b.forceTicket(keys, others, hitSubsets, uncovered, match)
		}
		if best == nil {
			break
		}
		tickets = append(tickets, best)
		for idx := range covered {
			delete(uncovered, idx)
		}
		logger.Debug("Wheel ticket selected", "index", len(tickets),
			"ticket", best.String(), "newly_covered", len(covered),
			"remaining", len(uncovered))
	}

	report := GuaranteeReport{
		Type:           "abbreviated",
		KeyNumbers:     keys,
		Tickets:        len(tickets),
		GuaranteeIfHit: ifHit,
		GuaranteeMatch: match,
		Statement: fmt.Sprintf(
			"If %d of your %d key numbers are drawn, at least one ticket has %d+ of those numbers.",
			ifHit, len(keys), match),
		SubsetsTotal:   len(hitSubsets),
		SubsetsCovered: len(hitSubsets) - len(uncovered),
		UncoveredLeft:  len(uncovered),
		Verified:       Verify(tickets, keys, ifHit, match),
	}
	if report.SubsetsTotal > 0 {
		report.CoveragePct = float64(report.SubsetsCovered) / float64(report.SubsetsTotal) * 100
	} else {
		report.CoveragePct = 100
	}
	if !report.Verified {
		report.Warning = fmt.Sprintf(
			"Full coverage not reached within %d tickets; %d subsets uncovered. "+
				"Raise the ticket limit or reduce key numbers.",
			maxTickets, len(uncovered))
	}

	logger.Info("Wheel built", "tickets", len(tickets),
		"coverage_pct", fmt.Sprintf("%.1f", report.CoveragePct),
		"verified", report.Verified)
	return tickets, report, nil
}

// bestCandidate samples random key-heavy tickets and returns the one
// covering the most still-uncovered hit subsets, with the set of subset
// indices it covers.
func (b *Builder) bestCandidate(keys, others []int, hitSubsets [][]int, uncovered map[int]struct{}, match int) (game.Ticket, map[int]struct{}) {
	minKeys := match
	if minKeys > len(keys) {
		minKeys = len(keys)
	}
	maxKeys := len(keys)
	if maxKeys > b.cfg.DrawSize {
		maxKeys = b.cfg.DrawSize
	}

	candidates := 10 * len(hitSubsets)
	if candidates < 1000 {
		candidates = 1000
	}
	if candidates > 3000 {
		candidates = 3000
	}

	var best game.Ticket
	var bestCovered map[int]struct{}
	for i := 0; i < candidates; i++ {
		candidate := b.randomKeyTicket(keys, others, minKeys, maxKeys)
		if candidate == nil {
			continue
		}
		covered := coveredSubsets(candidate, hitSubsets, uncovered, match)
		if len(covered) > len(bestCovered) {
			best = candidate
			bestCovered = covered
		}
	}
	return best, bestCovered
}

// randomKeyTicket builds one candidate: a random count of key numbers in
// [minKeys, maxKeys], the rest filled from non-key numbers, padded from
// whatever is left if the pool runs short.
func (b *Builder) randomKeyTicket(keys, others []int, minKeys, maxKeys int) game.Ticket {
	nKeys := minKeys
	if maxKeys > minKeys {
		nKeys += b.rng.Intn(maxKeys - minKeys + 1)
	}
	fill := b.cfg.DrawSize - nKeys

	numbers := game.SampleNumbers(keys, nKeys, b.rng)
	if fill > 0 && len(others) > 0 {
		take := fill
		if take > len(others) {
			take = len(others)
		}
		numbers = append(numbers, game.SampleNumbers(others, take, b.rng)...)
	}

	// Pad from any unused number if still short.
	if len(numbers) < b.cfg.DrawSize {
		used := make(map[int]bool, len(numbers))
		for _, n := range numbers {
			used[n] = true
		}
		for n := 1; n <= b.cfg.PoolSize && len(numbers) < b.cfg.DrawSize; n++ {
			if !used[n] {
				numbers = append(numbers, n)
			}
		}
	}
	if len(numbers) != b.cfg.DrawSize {
		return nil
	}
	sort.Ints(numbers)
	return game.Ticket(numbers)
}

// forceTicket constructs a ticket directly containing one uncovered hit
// subset plus random fill, guaranteeing progress when sampling stalls.
// Subsets are visited in index order so the result depends only on the
// random source.
func (b *Builder) forceTicket(keys, others []int, hitSubsets [][]int, uncovered map[int]struct{}, match int) (game.Ticket, map[int]struct{}) {
	for idx := 0; idx < len(hitSubsets); idx++ {
		if _, ok := uncovered[idx]; !ok {
			continue
		}
		numbers := make([]int, len(hitSubsets[idx]))
		copy(numbers, hitSubsets[idx])
		if len(numbers) > b.cfg.DrawSize {
			numbers = numbers[:b.cfg.DrawSize]
		}

		inTicket := make(map[int]bool, b.cfg.DrawSize)
		for _, n := range numbers {
			inTicket[n] = true
		}
		available := make([]int, 0, len(keys)+len(others))
		for _, n := range append(append([]int{}, keys...), others...) {
			if !inTicket[n] {
				available = append(available, n)
			}
		}
		b.rng.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})
		for _, n := range available {
			if len(numbers) == b.cfg.DrawSize {
				break
			}
			numbers = append(numbers, n)
		}
		if len(numbers) != b.cfg.DrawSize {
			continue
		}
		sort.Ints(numbers)
		ticket := game.Ticket(numbers)
		return ticket, coveredSubsets(ticket, hitSubsets, uncovered, match)
	}
	return nil, nil
}

// coveredSubsets returns the indices of still-uncovered hit subsets that
// ticket intersects in at least `match` numbers.
func coveredSubsets(ticket game.Ticket, hitSubsets [][]int, uncovered map[int]struct{}, match int) map[int]struct{} {
	covered := make(map[int]struct{})
	for idx := range uncovered {
		hits := 0
		for _, n := range hitSubsets[idx] {
			if ticket.Contains(n) {
				hits++
			}
		}
		if hits >= match {
			covered[idx] = struct{}{}
		}
	}
	return covered
}
