package services

import (
	"context"
	"testing"

	"github.com/lucky5/draw-engine/internal/engine"
	"github.com/lucky5/draw-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func jackpotIssue() *models.Issue {
	return &models.Issue{
		ID:          primitive.NewObjectID(),
		LotteryType: "LUCKY5",
		IssueNo:     "2608291307",
	}
}

func digitBet(amount float64) ActiveBet {
	return ActiveBet{
		Bet: &models.Bet{
			ID:       primitive.NewObjectID(),
			UserID:   "member-1001",
			GameType: models.GameDigit,
			Amount:   amount,
		},
		Parsed: &engine.ParsedBet{Kind: engine.KindDigit, Position: 0, Value: 5, Amount: amount, Odds: 9.8},
	}
}

func TestSettleContributions(t *testing.T) {
	repo := &fakeJackpotRepo{}
	svc := NewJackpotService(repo, fixedRNG{value: 0.9}, testConfig())

	space := engine.Enumerate(1000)
	losing := engine.ComputeAttrs(engine.OutcomeFromIndex(0)) // digit 0 at wan, bet needs 5
	bets := []ActiveBet{digitBet(100), digitBet(40)}

	require.NoError(t, svc.Settle(context.Background(), jackpotIssue(), space, &losing, bets))

	assert.InDelta(t, 140*0.001, repo.pool.TotalContributions, 1e-9)
	// No base winner, so no checks were run
	assert.Empty(t, repo.checks)
}

func TestSettleChecksBaseWinners(t *testing.T) {
	repo := &fakeJackpotRepo{}
	svc := NewJackpotService(repo, fixedRNG{value: 0.9}, testConfig())

	space := engine.Enumerate(0)
	winning, err := engine.ParseOutcome("51234")
	require.NoError(t, err)
	attrs := engine.ComputeAttrs(winning)
	bets := []ActiveBet{digitBet(100)}

	require.NoError(t, svc.Settle(context.Background(), jackpotIssue(), space, &attrs, bets))

	require.Len(t, repo.checks, 1)
	check := repo.checks[0]
	// One tenth of the space wins a single-digit straight
	assert.InDelta(t, 0.1, check.BaseWinProbability, 1e-12)
	assert.InDelta(t, (1.0/59600000)/0.1, check.CheckProbability, 1e-15)
	assert.Equal(t, 0.9, check.RandomValue)
	assert.False(t, check.Won)
	assert.Zero(t, check.Payout)
}

func TestSettleAwardsAndResetsPool(t *testing.T) {
	cfg := testConfig()
	repo := &fakeJackpotRepo{}
	repo.pool.CurrentAmount = 250000
	// Random value zero always passes the check
	svc := NewJackpotService(repo, fixedRNG{value: 0}, cfg)

	space := engine.Enumerate(0)
	winning, err := engine.ParseOutcome("51234")
	require.NoError(t, err)
	attrs := engine.ComputeAttrs(winning)
	bets := []ActiveBet{digitBet(100)}

	require.NoError(t, svc.Settle(context.Background(), jackpotIssue(), space, &attrs, bets))

	require.Len(t, repo.checks, 1)
	check := repo.checks[0]
	assert.True(t, check.Won)
	// The contribution from this settlement lands before the payout
	assert.InDelta(t, 250000+100*0.001, check.Payout, 1e-9)
	assert.Equal(t, cfg.Jackpot.BaseFloor, repo.pool.CurrentAmount)
}

func TestSettleDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Jackpot.Enabled = false
	repo := &fakeJackpotRepo{}
	svc := NewJackpotService(repo, fixedRNG{value: 0}, cfg)

	space := engine.Enumerate(1000)
	attrs := engine.ComputeAttrs(engine.OutcomeFromIndex(0))
	require.NoError(t, svc.Settle(context.Background(), jackpotIssue(), space, &attrs, []ActiveBet{digitBet(100)}))

	assert.Zero(t, repo.pool.TotalContributions)
	assert.Empty(t, repo.checks)
}

func TestSettleCheckProbabilityClamped(t *testing.T) {
	cfg := testConfig()
	cfg.Jackpot.TargetProbability = 0.5
	repo := &fakeJackpotRepo{}
	svc := NewJackpotService(repo, fixedRNG{value: 0.99}, cfg)

	// Target far above the base win probability drives the raw ratio
	// past 1; the stored probability must be clamped
	space := engine.Enumerate(1000)
	attrs := engine.ComputeAttrs(engine.OutcomeFromIndex(512)) // digits 0,0,5,1,2
	bet := ActiveBet{
		Bet:    &models.Bet{ID: primitive.NewObjectID(), UserID: "member-1001", GameType: models.GameDigit, Amount: 10},
		Parsed: &engine.ParsedBet{Kind: engine.KindDigit, Position: 2, Value: 5, Amount: 10, Odds: 9.8},
	}

	require.NoError(t, svc.Settle(context.Background(), jackpotIssue(), space, &attrs, []ActiveBet{bet}))

	require.Len(t, repo.checks, 1)
	assert.Equal(t, 1.0, repo.checks[0].CheckProbability)
}

func TestGetStatusCreatesPoolAtFloor(t *testing.T) {
	cfg := testConfig()
	repo := &fakeJackpotRepo{}
	svc := NewJackpotService(repo, fixedRNG{value: 0.5}, cfg)

	pool, err := svc.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cfg.Jackpot.BaseFloor, pool.CurrentAmount)
	assert.Equal(t, "super", pool.PoolKey)
}
