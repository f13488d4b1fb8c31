package engine

import (
	"context"
	"testing"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRNG replays a fixed float sequence and picks the first element of
// every Intn range, making decisions fully deterministic.
type stubRNG struct {
	floats []float64
	next   int
}

func (s *stubRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[s.next%len(s.floats)]
	s.next++
	return v
}

func (s *stubRNG) Intn(n int) int { return 0 }

func testDecideConfig() Config {
	return Config{
		Enabled:                 true,
		AllowedWinProbability:   0.0000000168,
		MaxAnalysisCombinations: SpaceSize,
		AnalysisTimeout:         5 * time.Second,
		Workers:                 4,
	}
}

func TestDecideDisabled(t *testing.T) {
	eng := NewEngine(&stubRNG{})
	space := Enumerate(0)
	bets := []*ParsedBet{{Kind: KindDigit, Position: 0, Value: 5, Amount: 100, Odds: 9.8}}

	cfg := testDecideConfig()
	cfg.Enabled = false
	res := eng.Decide(context.Background(), space, bets, cfg)

	assert.Equal(t, models.DecisionDisabledRandom, res.Decision)
	assert.False(t, res.TimedOut)
}

func TestDecideNoBets(t *testing.T) {
	eng := NewEngine(&stubRNG{})
	res := eng.Decide(context.Background(), Enumerate(0), nil, testDecideConfig())

	assert.Equal(t, models.DecisionAvoided, res.Decision)
	assert.Zero(t, res.TotalBets)
	assert.Zero(t, res.WinningCombinations)
}

func TestDecideAvoidsWinningOutcomes(t *testing.T) {
	// Probability gate closed: r = 0.9 is far above the allowed-win
	// probability, so the pick must come from the safe partition.
	eng := NewEngine(&stubRNG{floats: []float64{0.9}})
	space := Enumerate(0)
	bets := []*ParsedBet{
		{Kind: KindDigit, Position: 0, Value: 5, Amount: 100, Odds: 9.8},
		{Kind: KindSumBigSmall, Face: FaceBig, Amount: 50, Odds: 1.98},
		{Kind: KindThreeDigit, StartPos: 0, NDigits: 3, Digits: [3]int{1, 2, 3}, Amount: 10, Odds: 690},
	}

	res := eng.Decide(context.Background(), space, bets, testDecideConfig())

	require.Equal(t, models.DecisionAvoided, res.Decision)
	assert.Equal(t, 3, res.TotalBets)
	assert.False(t, res.TimedOut)
	assert.Zero(t, res.MinimizedPayout)

	a := ComputeAttrs(res.Outcome)
	for _, b := range bets {
		assert.False(t, Win(&a, b), "outcome %s pays a bet", res.Outcome)
	}
	// Safe and unsafe partition the whole space
	assert.Greater(t, res.WinningCombinations, 0)
	assert.Less(t, res.WinningCombinations, space.Len())
}

func TestDecideAllowedWin(t *testing.T) {
	// Gate open: r = 0 is below any positive allowed-win probability,
	// so the pick comes from the unsafe partition.
	eng := NewEngine(&stubRNG{floats: []float64{0}})
	space := Enumerate(0)
	bets := []*ParsedBet{{Kind: KindDigit, Position: 0, Value: 5, Amount: 100, Odds: 9.8}}

	cfg := testDecideConfig()
	cfg.AllowedWinProbability = 0.5
	res := eng.Decide(context.Background(), space, bets, cfg)

	require.Equal(t, models.DecisionAllowedWin, res.Decision)
	a := ComputeAttrs(res.Outcome)
	assert.True(t, Win(&a, bets[0]))
	assert.Equal(t, SpaceSize/10, res.WinningCombinations)
}

func TestDecideMinimizesWhenNothingSafe(t *testing.T) {
	// Opposite sum-face bets leave no safe outcome; the engine must
	// pick from the cheaper side.
	eng := NewEngine(&stubRNG{floats: []float64{0.9}})
	space := Enumerate(0)
	bets := []*ParsedBet{
		{Kind: KindSumBigSmall, Face: FaceBig, Amount: 100, Odds: 1.98},
		{Kind: KindSumBigSmall, Face: FaceSmall, Amount: 1, Odds: 1.98},
	}

	res := eng.Decide(context.Background(), space, bets, testDecideConfig())

	require.Equal(t, models.DecisionAvoided, res.Decision)
	assert.Equal(t, space.Len(), res.WinningCombinations)
	assert.InDelta(t, 1.98, res.MinimizedPayout, payoutEpsilon)

	a := ComputeAttrs(res.Outcome)
	assert.False(t, a.SumBig, "minimized pick must land on the cheap side")
}

func TestDecideTimeoutFallback(t *testing.T) {
	eng := NewEngine(&stubRNG{})
	space := Enumerate(0)
	bets := []*ParsedBet{{Kind: KindDigit, Position: 0, Value: 5, Amount: 100, Odds: 9.8}}

	cfg := testDecideConfig()
	cfg.AnalysisTimeout = time.Nanosecond
	start := time.Now()
	res := eng.Decide(context.Background(), space, bets, cfg)

	assert.Equal(t, models.DecisionTimeoutFallback, res.Decision)
	assert.True(t, res.TimedOut)
	// The fallback still returns promptly with some outcome
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDecideCappedSpace(t *testing.T) {
	eng := NewEngine(&stubRNG{floats: []float64{0.9}})
	space := Enumerate(500)
	bets := []*ParsedBet{{Kind: KindDigit, Position: 4, Value: 9, Amount: 10, Odds: 9.8}}

	res := eng.Decide(context.Background(), space, bets, testDecideConfig())

	require.Equal(t, models.DecisionAvoided, res.Decision)
	// 500 outcomes, every tenth ends in 9
	assert.Equal(t, 50, res.WinningCombinations)
	a := ComputeAttrs(res.Outcome)
	assert.False(t, Win(&a, bets[0]))
}
