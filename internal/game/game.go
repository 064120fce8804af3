// Package game defines the combinatorial universe of a pick-style lottery:
// draw_size distinct numbers drawn from [1, pool_size], with derived totals
// and exact odds. All algorithms in this repository are parameterized on a
// game.Config so the same code serves 7/39, 6/49 and similar variants.
package game

import (
	"errors"
	"fmt"
)

// ErrInvalidGame indicates an unusable game configuration.
var ErrInvalidGame = errors.New("invalid game configuration")

// Config describes a lottery game variant.
type Config struct {
	PoolSize int `json:"pool_size"` // numbers range over [1, PoolSize]
	DrawSize int `json:"draw_size"` // numbers per ticket/draw
}

// Default is the Serbia Loto 7/39 game.
func Default() Config {
	return Config{PoolSize: 39, DrawSize: 7}
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	if c.PoolSize < 2 {
		return fmt.Errorf("%w: pool size %d", ErrInvalidGame, c.PoolSize)
	}
	if c.DrawSize < 1 {
		return fmt.Errorf("%w: draw size %d", ErrInvalidGame, c.DrawSize)
	}
	if c.DrawSize > c.PoolSize {
		return fmt.Errorf("%w: draw size %d exceeds pool size %d",
			ErrInvalidGame, c.DrawSize, c.PoolSize)
	}
	return nil
}

// TotalCombinations is C(pool, draw), the number of possible draws.
func (c Config) TotalCombinations() int64 {
	return Binomial(c.PoolSize, c.DrawSize)
}

// TotalPairs is C(pool, 2), the number of unordered number pairs.
func (c Config) TotalPairs() int64 {
	return Binomial(c.PoolSize, 2)
}

// TotalTriples is C(pool, 3), the number of unordered number triples.
func (c Config) TotalTriples() int64 {
	return Binomial(c.PoolSize, 3)
}

// ExpectedTicketSum is the mean sum of a uniformly drawn ticket,
// draw_size * (1 + pool_size) / 2.
func (c Config) ExpectedTicketSum() float64 {
	return float64(c.DrawSize) * float64(1+c.PoolSize) / 2
}
