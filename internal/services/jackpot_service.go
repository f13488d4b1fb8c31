package services

import (
	"context"

	"github.com/lucky5/draw-engine/internal/config"
	"github.com/lucky5/draw-engine/internal/engine"
	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"github.com/lucky5/draw-engine/internal/utils"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure JackpotServiceImpl implements JackpotService
var _ JackpotService = (*JackpotServiceImpl)(nil)

// JackpotServiceImpl runs the independent super-jackpot layer on top
// of committed draws. It never touches the drawn numbers.
type JackpotServiceImpl struct {
	jackpotRepo repositories.JackpotRepository
	rng         engine.RNG
	cfg         config.JackpotConfig
}

// NewJackpotService creates a new JackpotServiceImpl
func NewJackpotService(jackpotRepo repositories.JackpotRepository, rng engine.RNG, cfg *config.Config) *JackpotServiceImpl {
	return &JackpotServiceImpl{
		jackpotRepo: jackpotRepo,
		rng:         rng,
		cfg:         cfg.Jackpot,
	}
}

// Settle books the per-bet stake contributions and runs the weighted
// jackpot check on every base-winning bet. The check probability is
// target_probability / base_win_probability, so the unconditional
// chance per bet equals the configured target regardless of which
// game it was placed on.
func (s *JackpotServiceImpl) Settle(ctx context.Context, issue *models.Issue, space *engine.Space, chosen *engine.Attrs, bets []ActiveBet) error {
	if !s.cfg.Enabled || len(bets) == 0 {
		return nil
	}

	contribution := 0.0
	for _, ab := range bets {
		contribution += ab.Bet.Amount * s.cfg.ContributionRate
	}
	if err := s.jackpotRepo.AddContribution(ctx, contribution); err != nil {
		return &models.PersistenceError{Op: "jackpot contribution", Err: err}
	}

	for _, ab := range bets {
		if !engine.Win(chosen, ab.Parsed) {
			continue
		}
		winCount := space.WinCount(ab.Parsed)
		if winCount == 0 {
			// A capped space can miss the bet's winning region entirely
			continue
		}
		baseProb := float64(winCount) / float64(space.Len())
		checkProb := s.cfg.TargetProbability / baseProb
		if checkProb > 1 {
			checkProb = 1
		}

		randomValue := s.rng.Float64()
		won := randomValue < checkProb

		check := &models.JackpotCheck{
			LotteryType:        issue.LotteryType,
			IssueNo:            issue.IssueNo,
			BetID:              ab.Bet.ID,
			UserID:             ab.Bet.UserID,
			BaseWinProbability: baseProb,
			CheckProbability:   checkProb,
			RandomValue:        randomValue,
			Won:                won,
		}
		if won {
			paid, err := s.jackpotRepo.PayAndReset(ctx, s.cfg.BaseFloor)
			if err != nil {
				return &models.PersistenceError{Op: "jackpot payout", Err: err}
			}
			check.Payout = paid
			slog.Info("Super jackpot awarded",
				"issueNo", issue.IssueNo,
				"userId", utils.MaskUserID(ab.Bet.UserID),
				"payout", paid,
				"checkProbability", checkProb)
		}
		if err := s.jackpotRepo.CreateCheck(ctx, check); err != nil {
			return &models.PersistenceError{Op: "jackpot audit", Err: err}
		}
	}
	return nil
}

// GetStatus returns the current pool
func (s *JackpotServiceImpl) GetStatus(ctx context.Context) (*models.JackpotPool, error) {
	return s.jackpotRepo.GetPool(ctx, s.cfg.BaseFloor)
}

// GetRecentChecks returns the latest jackpot audit rows
func (s *JackpotServiceImpl) GetRecentChecks(ctx context.Context, limit int) ([]*models.JackpotCheck, error) {
	return s.jackpotRepo.FindRecentChecks(ctx, limit)
}
