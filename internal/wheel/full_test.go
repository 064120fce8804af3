package wheel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotokit/loto-optimizer/internal/game"
)

func TestFullWheelSingleCombination(t *testing.T) {
	keys := []int{38, 1, 22, 9, 30, 5, 17}
	tickets, report, err := FullWheel(game.Default(), keys, 0)
	require.NoError(t, err)

	require.Len(t, tickets, 1)
	assert.Equal(t, game.Ticket{1, 5, 9, 17, 22, 30, 38}, tickets[0])
	assert.True(t, report.Verified)
	assert.Equal(t, "full", report.Type)
	assert.InDelta(t, 100.0, report.CoveragePct, 1e-9)
}

func TestFullWheelNineKeys(t *testing.T) {
	cfg := game.Default()
	tickets, report, err := FullWheel(cfg, keyRange(9), 0)
	require.NoError(t, err)

	// C(9, 7) = 36 combinations.
	require.Len(t, tickets, 36)
	assert.Equal(t, 36, report.Tickets)
	for _, ticket := range tickets {
		require.NoError(t, ticket.Validate(cfg))
	}

	// The strongest guarantee holds by construction.
	assert.True(t, Verify(tickets, keyRange(9), 7, 7))
}

func TestFullWheelTooManyCombinations(t *testing.T) {
	// C(13, 7) = 1716 exceeds the 500-ticket cap.
	_, _, err := FullWheel(game.Default(), keyRange(13), 0)
	assert.ErrorIs(t, err, ErrTooManyCombinations)

	// A raised cap admits the same wheel.
	tickets, _, err := FullWheel(game.Default(), keyRange(13), 2000)
	require.NoError(t, err)
	assert.Len(t, tickets, 1716)
}

func TestFullWheelTooFewKeys(t *testing.T) {
	_, _, err := FullWheel(game.Default(), keyRange(5), 0)
	assert.ErrorIs(t, err, ErrInvalidGuarantee)
}

func TestEstimateCost(t *testing.T) {
	cfg := game.Default()
	est, err := EstimateCost(cfg, 12, 3, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(220), est.SubsetsToCover)
	assert.Equal(t, int64(35), est.MaxCoveragePerTicket) // C(7,3)
	assert.Equal(t, int64(7), est.MinTickets)            // ceil(220/35)
	assert.GreaterOrEqual(t, est.MaxTickets, est.MinTickets)
	assert.LessOrEqual(t, est.MaxTickets, est.SubsetsToCover)
}

func TestEstimateCostRejectsInvalidParameters(t *testing.T) {
	cfg := game.Default()
	tests := []struct {
		name                string
		nKeys, ifHit, match int
	}{
		{"zero keys", 0, 3, 3},
		{"keys exceed pool", 40, 3, 3},
		{"if-hit exceeds keys", 10, 11, 3},
		{"zero if-hit", 10, 0, 1},
		{"match exceeds if-hit", 10, 3, 4},
		{"zero match", 10, 3, 0},
		{"match exceeds draw size", 12, 10, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateCost(cfg, tt.nKeys, tt.ifHit, tt.match)
			assert.ErrorIs(t, err, ErrInvalidGuarantee)
		})
	}
}

// The covering-design lower bound must hold for an actually verified
// wheel.
func TestEstimateLowerBoundHolds(t *testing.T) {
	b := newTestBuilder(t, 13)
	tickets, report, err := b.Build(keyRange(12), 3, 3, 50)
	require.NoError(t, err)
	require.True(t, report.Verified)

	est, err := EstimateCost(game.Default(), 12, 3, 3)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, int64(len(tickets)), est.MinTickets)
}
