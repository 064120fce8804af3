// Package drawstore persists historical draws and generated predictions
// in a local key-value store. Draws are read-only history for later
// evaluation; the optimizer itself never consults them (past draws carry
// no predictive weight).
package drawstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/lotokit/loto-optimizer/internal/game"
	"github.com/lotokit/loto-optimizer/internal/portfolio"
	"github.com/lotokit/loto-optimizer/internal/wheel"
)

const (
	drawPrefix       = "draws/"
	predictionPrefix = "predictions/"
)

// Draw is one historical draw result. Date is ISO format (2006-01-02) so
// the key order is chronological.
type Draw struct {
	Date    string      `json:"date"`
	Numbers game.Ticket `json:"numbers"`
}

// Prediction is a generated portfolio saved for later evaluation against
// an actual draw.
type Prediction struct {
	ID        string                 `json:"id"`
	Strategy  string                 `json:"strategy"`
	CreatedAt time.Time              `json:"created_at"`
	Tickets   portfolio.Portfolio    `json:"tickets"`
	Stats     *portfolio.Stats       `json:"stats,omitempty"`
	Report    *wheel.GuaranteeReport `json:"report,omitempty"`
}

// HitCounts returns, per ticket, how many of the prediction's numbers the
// draw matched.
func (p Prediction) HitCounts(d Draw) []int {
	hits := make([]int, len(p.Tickets))
	for i, t := range p.Tickets {
		hits[i] = t.Overlap(d.Numbers)
	}
	return hits
}

// Store keeps draws and predictions in a KVStore.
type Store struct {
	kv KVStore
}

// NewStore wraps a KVStore.
func NewStore(kv KVStore) *Store {
	return &Store{kv: kv}
}

// SaveDraw validates and stores a draw keyed by date. A second save for
// the same date overwrites the first.
func (s *Store) SaveDraw(cfg game.Config, d Draw) error {
	if _, err := time.Parse(time.DateOnly, d.Date); err != nil {
		return fmt.Errorf("invalid draw date %q: %w", d.Date, err)
	}
	if err := d.Numbers.Validate(cfg); err != nil {
		return fmt.Errorf("invalid draw numbers: %w", err)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draw: %w", err)
	}
	return s.kv.Set(drawPrefix+d.Date, data)
}

// Draws returns all stored draws in chronological order.
func (s *Store) Draws() ([]Draw, error) {
	pairs, err := s.kv.List(drawPrefix)
	if err != nil {
		return nil, fmt.Errorf("list draws: %w", err)
	}
	draws := make([]Draw, 0, len(pairs))
	for _, pair := range pairs {
		var d Draw
		if err := json.Unmarshal(pair.Value, &d); err != nil {
			return nil, fmt.Errorf("unmarshal draw %s: %w", pair.Key, err)
		}
		draws = append(draws, d)
	}
	sort.Slice(draws, func(i, j int) bool { return draws[i].Date < draws[j].Date })
	return draws, nil
}

// LatestDraw returns the most recent draw, or ErrKeyNotFound if none.
func (s *Store) LatestDraw() (*Draw, error) {
	draws, err := s.Draws()
	if err != nil {
		return nil, err
	}
	if len(draws) == 0 {
		return nil, ErrKeyNotFound
	}
	return &draws[len(draws)-1], nil
}

// SavePrediction stores a prediction. An empty ID is derived from the
// creation time and strategy.
func (s *Store) SavePrediction(p Prediction) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.ID == "" {
		p.ID = fmt.Sprintf("%s-%s", p.CreatedAt.Format("20060102T150405"), p.Strategy)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}
	return s.kv.Set(predictionPrefix+p.ID, data)
}

// Predictions returns all stored predictions, oldest first.
func (s *Store) Predictions() ([]Prediction, error) {
	pairs, err := s.kv.List(predictionPrefix)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	preds := make([]Prediction, 0, len(pairs))
	for _, pair := range pairs {
		var p Prediction
		if err := json.Unmarshal(pair.Value, &p); err != nil {
			return nil, fmt.Errorf("unmarshal prediction %s: %w", pair.Key, err)
		}
		preds = append(preds, p)
	}
	sort.Slice(preds, func(i, j int) bool { return preds[i].CreatedAt.Before(preds[j].CreatedAt) })
	return preds, nil
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.kv.Close()
}
