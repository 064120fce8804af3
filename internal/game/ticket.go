package game

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
)

// Ticket is a played combination: draw_size distinct numbers kept sorted
// ascending.
type Ticket []int

// Pair is an unordered pair of numbers with A < B.
type Pair struct {
	A, B int
}

// Triple is an unordered triple of numbers with A < B < C.
type Triple struct {
	A, B, C int
}

// Validate checks the ticket invariant against a game configuration:
// correct length, all numbers in [1, pool], strictly ascending (which
// implies distinct).
func (t Ticket) Validate(cfg Config) error {
	if len(t) != cfg.DrawSize {
		return fmt.Errorf("%w: ticket has %d numbers, want %d",
			ErrInvalidGame, len(t), cfg.DrawSize)
	}
	for i, n := range t {
		if n < 1 || n > cfg.PoolSize {
			return fmt.Errorf("%w: number %d out of range [1, %d]",
				ErrInvalidGame, n, cfg.PoolSize)
		}
		if i > 0 && t[i-1] >= n {
			return fmt.Errorf("%w: numbers not strictly ascending at index %d",
				ErrInvalidGame, i)
		}
	}
	return nil
}

// Contains reports whether n is on the ticket.
func (t Ticket) Contains(n int) bool {
	i := sort.SearchInts(t, n)
	return i < len(t) && t[i] == n
}

// Overlap returns the number of shared numbers between two sorted tickets.
func (t Ticket) Overlap(other Ticket) int {
	count, i, j := 0, 0, 0
	for i < len(t) && j < len(other) {
		switch {
		case t[i] < other[j]:
			i++
		case t[i] > other[j]:
			j++
		default:
			count++
			i++
			j++
		}
	}
	return count
}

// Sum returns the sum of the ticket's numbers.
func (t Ticket) Sum() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// OddCount returns how many of the ticket's numbers are odd.
func (t Ticket) OddCount() int {
	count := 0
	for _, n := range t {
		if n%2 == 1 {
			count++
		}
	}
	return count
}

// Pairs returns all C(len, 2) unordered pairs on the ticket.
func (t Ticket) Pairs() []Pair {
	pairs := make([]Pair, 0, len(t)*(len(t)-1)/2)
	for i := 0; i < len(t); i++ {
		for j := i + 1; j < len(t); j++ {
			pairs = append(pairs, Pair{A: t[i], B: t[j]})
		}
	}
	return pairs
}

// Triples returns all C(len, 3) unordered triples on the ticket.
func (t Ticket) Triples() []Triple {
	n := len(t)
	triples := make([]Triple, 0, n*(n-1)*(n-2)/6)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				triples = append(triples, Triple{A: t[i], B: t[j], C: t[k]})
			}
		}
	}
	return triples
}

func (t Ticket) String() string {
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, " ")
}

// NewTicket builds a validated ticket from arbitrary numbers, sorting a
// copy of the input.
func NewTicket(cfg Config, numbers []int) (Ticket, error) {
	t := make(Ticket, len(numbers))
	copy(t, numbers)
	sort.Ints(t)
	if err := t.Validate(cfg); err != nil {
		return nil, err
	}
	return t, nil
}

// RandomTicket draws a uniform random draw_size-subset of [1, pool_size],
// sorted ascending. The caller supplies the random source so results are
// reproducible under a fixed seed.
func RandomTicket(cfg Config, rng *rand.Rand) Ticket {
	perm := rng.Perm(cfg.PoolSize)
	t := make(Ticket, cfg.DrawSize)
	for i := 0; i < cfg.DrawSize; i++ {
		t[i] = perm[i] + 1
	}
	sort.Ints(t)
	return t
}

// SampleNumbers picks k distinct values from nums uniformly at random,
// sorted ascending. nums is not modified.
func SampleNumbers(nums []int, k int, rng *rand.Rand) []int {
	idx := rng.Perm(len(nums))[:k]
	out := make([]int, k)
	for i, j := range idx {
		out[i] = nums[j]
	}
	sort.Ints(out)
	return out
}
