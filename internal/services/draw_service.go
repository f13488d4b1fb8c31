package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lucky5/draw-engine/internal/config"
	"github.com/lucky5/draw-engine/internal/engine"
	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"github.com/lucky5/draw-engine/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure DrawServiceImpl implements DrawService
var _ DrawService = (*DrawServiceImpl)(nil)

// commitRetries bounds the recorder retry loop; a commit still failing
// after that is surfaced and re-driven by the scheduler's next tick
const commitRetries = 3

// DrawServiceImpl runs the outcome-selection pipeline: bet ingestion,
// space enumeration, the avoid-win decision, the atomic commit and the
// post-commit jackpot settlement.
type DrawServiceImpl struct {
	issueRepo     repositories.IssueRepository
	betRepo       repositories.BetRepository
	outcomeRepo   repositories.OutcomeRepository
	decisionRepo  repositories.DecisionLogRepository
	recorder      repositories.DrawRecorder
	oddsService   OddsService
	configService ConfigService
	jackpot       JackpotService
	engine        *engine.Engine
	workers       int
}

// NewDrawService creates a new DrawServiceImpl
func NewDrawService(
	issueRepo repositories.IssueRepository,
	betRepo repositories.BetRepository,
	outcomeRepo repositories.OutcomeRepository,
	decisionRepo repositories.DecisionLogRepository,
	recorder repositories.DrawRecorder,
	oddsService OddsService,
	configService ConfigService,
	jackpot JackpotService,
	eng *engine.Engine,
	cfg *config.Config,
) *DrawServiceImpl {
	return &DrawServiceImpl{
		issueRepo:     issueRepo,
		betRepo:       betRepo,
		outcomeRepo:   outcomeRepo,
		decisionRepo:  decisionRepo,
		recorder:      recorder,
		oddsService:   oddsService,
		configService: configService,
		jackpot:       jackpot,
		engine:        eng,
		workers:       cfg.Engine.Workers,
	}
}

// ExecuteDraw runs the full pipeline for a pending issue. Re-executing
// an already drawn issue returns the committed outcome as a no-op.
func (s *DrawServiceImpl) ExecuteDraw(ctx context.Context, issue *models.Issue) (*models.DrawOutcome, error) {
	if issue.Status == models.IssueStatusDrawn {
		return s.outcomeRepo.FindByIssueNo(ctx, issue.LotteryType, issue.IssueNo)
	}

	cfg, err := s.configService.GetAvoidWinConfig(ctx)
	if err != nil {
		slog.Error("Failed to load avoid-win config", "error", err, "issueNo", issue.IssueNo)
		return nil, err
	}

	active, err := s.loadActiveBets(ctx, issue)
	if err != nil {
		return nil, err
	}

	// Bets under the threshold are still settled normally against the
	// drawn outcome; they just don't constrain the selection.
	analysisBets := make([]*engine.ParsedBet, 0, len(active))
	for _, ab := range active {
		if ab.Bet.Amount >= cfg.MinBetAmount {
			analysisBets = append(analysisBets, ab.Parsed)
		}
	}

	space := engine.Enumerate(cfg.MaxAnalysisCombinations)
	result := s.engine.Decide(ctx, space, analysisBets, engine.Config{
		Enabled:                 cfg.Enabled,
		AllowedWinProbability:   cfg.AllowedWinProbability,
		MaxAnalysisCombinations: cfg.MaxAnalysisCombinations,
		AnalysisTimeout:         time.Duration(cfg.AnalysisTimeoutSeconds) * time.Second,
		Workers:                 s.workers,
	})

	attrs := engine.ComputeAttrs(result.Outcome)
	outcome := buildOutcome(issue, &attrs)
	decision := &models.DecisionLog{
		IssueID:             issue.ID,
		LotteryType:         issue.LotteryType,
		IssueNo:             issue.IssueNo,
		DecisionType:        result.Decision,
		DrawNumbers:         outcome.Numbers,
		TotalBets:           result.TotalBets,
		WinningCombinations: result.WinningCombinations,
		AnalysisTimeMs:      result.AnalysisTime.Milliseconds(),
	}

	if err := s.commitWithRetry(ctx, issue, outcome, decision); err != nil {
		if errors.Is(err, models.ErrConcurrencyConflict) {
			// A racing draw won; adopt its outcome
			slog.Warn("Concurrent draw detected, adopting committed outcome", "issueNo", issue.IssueNo)
			return s.outcomeRepo.FindByIssueNo(ctx, issue.LotteryType, issue.IssueNo)
		}
		return nil, err
	}
	issue.Status = models.IssueStatusDrawn

	slog.Info("Draw committed",
		"lotteryType", issue.LotteryType,
		"issueNo", issue.IssueNo,
		"numbers", outcome.Numbers,
		"decisionType", decision.DecisionType,
		"totalBets", decision.TotalBets,
		"winningCombinations", decision.WinningCombinations,
		"analysisTimeMs", decision.AnalysisTimeMs)

	// The jackpot layer only ever adds bonus payout on top of a base
	// win; a failure here must not unwind the committed draw.
	if err := s.jackpot.Settle(ctx, issue, space, &attrs, active); err != nil {
		slog.Error("Jackpot settlement failed", "error", err, "issueNo", issue.IssueNo)
	}

	return outcome, nil
}

// ManualDraw is the operator override. Supplied numbers are committed
// verbatim and logged as a manual decision; without numbers the issue
// is drawn through the normal pipeline.
func (s *DrawServiceImpl) ManualDraw(ctx context.Context, issueID primitive.ObjectID, numbers string) (*models.DrawOutcome, error) {
	issue, err := s.issueRepo.FindByID(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("issue not found: %w", err)
	}
	if issue.Status == models.IssueStatusDrawn {
		return nil, models.ErrConcurrencyConflict
	}
	if numbers == "" {
		return s.ExecuteDraw(ctx, issue)
	}

	chosen, err := engine.ParseOutcome(numbers)
	if err != nil {
		return nil, &models.ConfigurationError{Field: "numbers", Reason: err.Error()}
	}

	active, err := s.loadActiveBets(ctx, issue)
	if err != nil {
		return nil, err
	}

	attrs := engine.ComputeAttrs(chosen)
	outcome := buildOutcome(issue, &attrs)
	decision := &models.DecisionLog{
		IssueID:      issue.ID,
		LotteryType:  issue.LotteryType,
		IssueNo:      issue.IssueNo,
		DecisionType: models.DecisionManual,
		DrawNumbers:  outcome.Numbers,
		TotalBets:    len(active),
	}

	if err := s.commitWithRetry(ctx, issue, outcome, decision); err != nil {
		if errors.Is(err, models.ErrConcurrencyConflict) {
			return nil, models.ErrConcurrencyConflict
		}
		return nil, err
	}
	issue.Status = models.IssueStatusDrawn

	slog.Info("Manual draw committed", "issueNo", issue.IssueNo, "numbers", outcome.Numbers)

	space := engine.Enumerate(0)
	if err := s.jackpot.Settle(ctx, issue, space, &attrs, active); err != nil {
		slog.Error("Jackpot settlement failed", "error", err, "issueNo", issue.IssueNo)
	}
	return outcome, nil
}

// GetOutcomeByIssueNo retrieves one committed outcome
func (s *DrawServiceImpl) GetOutcomeByIssueNo(ctx context.Context, lotteryType, issueNo string) (*models.DrawOutcome, error) {
	return s.outcomeRepo.FindByIssueNo(ctx, lotteryType, issueNo)
}

// GetRecentOutcomes retrieves the latest committed outcomes
func (s *DrawServiceImpl) GetRecentOutcomes(ctx context.Context, lotteryType string, limit int) ([]*models.DrawOutcome, error) {
	return s.outcomeRepo.FindRecent(ctx, lotteryType, limit)
}

// GetRecentDecisions retrieves the latest decision audit rows
func (s *DrawServiceImpl) GetRecentDecisions(ctx context.Context, lotteryType string, limit int) ([]*models.DecisionLog, error) {
	return s.decisionRepo.FindRecent(ctx, lotteryType, limit)
}

// loadActiveBets reads the ledger slice for the issue and validates
// each bet. A malformed bet is excluded and logged, never fatal.
func (s *DrawServiceImpl) loadActiveBets(ctx context.Context, issue *models.Issue) ([]ActiveBet, error) {
	oddsTable, err := s.oddsService.GetOddsTable(ctx)
	if err != nil {
		return nil, err
	}
	bets, err := s.betRepo.FindActiveByIssue(ctx, issue.LotteryType, issue.IssueNo, issue.EndTime)
	if err != nil {
		return nil, &models.PersistenceError{Op: "load bets", Err: err}
	}

	active := make([]ActiveBet, 0, len(bets))
	for _, bet := range bets {
		parsed, err := engine.ParseBet(bet, oddsTable)
		if err != nil {
			slog.Warn("Excluding malformed bet from draw analysis",
				"error", err, "betId", bet.ID.Hex(), "userId", utils.MaskUserID(bet.UserID),
				"gameType", bet.GameType, "issueNo", issue.IssueNo)
			continue
		}
		active = append(active, ActiveBet{Bet: bet, Parsed: parsed})
	}
	return active, nil
}

// commitWithRetry drives the recorder with backoff. A concurrency
// conflict is final; transient persistence failures are retried.
func (s *DrawServiceImpl) commitWithRetry(ctx context.Context, issue *models.Issue, outcome *models.DrawOutcome, decision *models.DecisionLog) error {
	var lastErr error
	for attempt := 0; attempt < commitRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		lastErr = s.recorder.Commit(ctx, issue, outcome, decision)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, models.ErrConcurrencyConflict) {
			return lastErr
		}
		slog.Warn("Draw commit failed, retrying", "error", lastErr, "issueNo", issue.IssueNo, "attempt", attempt+1)
	}
	return &models.PersistenceError{Op: "draw commit", Err: lastErr}
}

// buildOutcome materializes a committed outcome row from its cached
// attributes
func buildOutcome(issue *models.Issue, a *engine.Attrs) *models.DrawOutcome {
	outcome := &models.DrawOutcome{
		LotteryType: issue.LotteryType,
		IssueNo:     issue.IssueNo,
		Numbers:     a.Outcome.String(),
		Wan:         a.Outcome.Digits[0],
		Qian:        a.Outcome.Digits[1],
		Bai:         a.Outcome.Digits[2],
		Shi:         a.Outcome.Digits[3],
		Ge:          a.Outcome.Digits[4],
		Sum:         a.Sum,
		DragonTiger: a.Dragon.String(),
		BullRank:    a.BullRank,
		PokerHand:   a.Poker.String(),
		DrawnAt:     time.Now(),
	}
	if a.SumBig {
		outcome.SumBigSmall = "big"
	} else {
		outcome.SumBigSmall = "small"
	}
	if a.SumOdd {
		outcome.SumOddEven = "odd"
	} else {
		outcome.SumOddEven = "even"
	}
	return outcome
}
