package drawstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotokit/loto-optimizer/internal/game"
	"github.com/lotokit/loto-optimizer/internal/portfolio"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	kv, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return NewStore(kv)
}

func TestSaveAndListDraws(t *testing.T) {
	store := newTestStore(t)
	cfg := game.Default()

	draws := []Draw{
		{Date: "2026-08-21", Numbers: game.Ticket{4, 9, 15, 22, 28, 33, 37}},
		{Date: "2026-08-18", Numbers: game.Ticket{1, 6, 11, 19, 24, 30, 39}},
	}
	for _, d := range draws {
		require.NoError(t, store.SaveDraw(cfg, d))
	}

	got, err := store.Draws()
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Chronological order regardless of insertion order.
	assert.Equal(t, "2026-08-18", got[0].Date)
	assert.Equal(t, "2026-08-21", got[1].Date)
	assert.Equal(t, draws[0].Numbers, got[1].Numbers)

	latest, err := store.LatestDraw()
	require.NoError(t, err)
	assert.Equal(t, "2026-08-21", latest.Date)
}

func TestSaveDrawValidation(t *testing.T) {
	store := newTestStore(t)
	cfg := game.Default()

	err := store.SaveDraw(cfg, Draw{Date: "21.08.2026", Numbers: game.Ticket{1, 2, 3, 4, 5, 6, 7}})
	assert.Error(t, err)

	err = store.SaveDraw(cfg, Draw{Date: "2026-08-21", Numbers: game.Ticket{1, 2, 3}})
	assert.ErrorIs(t, err, game.ErrInvalidGame)
}

func TestLatestDrawEmpty(t *testing.T) {
	store := newTestStore(t)
	_, err := store.LatestDraw()
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSaveAndListPredictions(t *testing.T) {
	store := newTestStore(t)

	stats := portfolio.Compute(game.Default(), portfolio.Portfolio{{1, 2, 3, 4, 5, 6, 7}})
	pred := Prediction{
		Strategy:  "coverage",
		CreatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Tickets:   portfolio.Portfolio{{1, 2, 3, 4, 5, 6, 7}},
		Stats:     &stats,
	}
	require.NoError(t, store.SavePrediction(pred))

	later := Prediction{
		Strategy:  "random",
		CreatedAt: time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC),
		Tickets:   portfolio.Portfolio{{8, 9, 10, 11, 12, 13, 14}},
	}
	require.NoError(t, store.SavePrediction(later))

	preds, err := store.Predictions()
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, "coverage", preds[0].Strategy)
	assert.Equal(t, "random", preds[1].Strategy)
	assert.NotEmpty(t, preds[0].ID)
	require.NotNil(t, preds[0].Stats)
	assert.Equal(t, 21, preds[0].Stats.PairsCovered)
}

func TestPredictionHitCounts(t *testing.T) {
	pred := Prediction{
		Tickets: portfolio.Portfolio{
			{1, 2, 3, 4, 5, 6, 7},
			{10, 20, 21, 22, 30, 31, 39},
		},
	}
	draw := Draw{Date: "2026-08-21", Numbers: game.Ticket{1, 2, 3, 20, 21, 22, 39}}

	hits := pred.HitCounts(draw)
	assert.Equal(t, []int{3, 4}, hits)
}
