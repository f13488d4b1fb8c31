package services

import (
	"context"
	"time"

	"github.com/lucky5/draw-engine/internal/engine"
	"github.com/lucky5/draw-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueService defines the interface for issue lifecycle operations
type IssueService interface {
	// GenerateIssue creates the issue starting at startTime (truncated
	// to the minute). Idempotent: re-invocation with the same start
	// time returns the existing issue.
	GenerateIssue(ctx context.Context, lotteryType string, startTime time.Time) (*models.Issue, error)

	// GetCountdown returns the countdown of the current pending issue,
	// or models.ErrNoPendingIssue when generation is needed
	GetCountdown(ctx context.Context, lotteryType string) (*models.Countdown, error)

	// CurrentIssue returns the current pending issue
	CurrentIssue(ctx context.Context, lotteryType string) (*models.Issue, error)
}

// DrawService defines the interface for draw execution and queries
type DrawService interface {
	// ExecuteDraw runs the full outcome-selection pipeline for a
	// pending issue and commits the result. Re-executing a drawn
	// issue is a no-op returning the committed outcome.
	ExecuteDraw(ctx context.Context, issue *models.Issue) (*models.DrawOutcome, error)

	// ManualDraw is the operator override. With numbers it commits the
	// supplied outcome verbatim (decision type manual); without, it
	// runs the normal pipeline for an overdue issue.
	ManualDraw(ctx context.Context, issueID primitive.ObjectID, numbers string) (*models.DrawOutcome, error)

	// GetOutcomeByIssueNo retrieves one committed outcome
	GetOutcomeByIssueNo(ctx context.Context, lotteryType, issueNo string) (*models.DrawOutcome, error)

	// GetRecentOutcomes retrieves the latest committed outcomes
	GetRecentOutcomes(ctx context.Context, lotteryType string, limit int) ([]*models.DrawOutcome, error)

	// GetRecentDecisions retrieves the latest decision audit rows
	GetRecentDecisions(ctx context.Context, lotteryType string, limit int) ([]*models.DecisionLog, error)
}

// JackpotService defines the interface for the super-jackpot layer.
// It runs strictly after an outcome is committed and never alters it.
type JackpotService interface {
	// Settle books stake contributions for every settled bet and runs
	// the independent jackpot check for each base-winning bet
	Settle(ctx context.Context, issue *models.Issue, space *engine.Space, chosen *engine.Attrs, bets []ActiveBet) error

	// GetStatus returns the current pool
	GetStatus(ctx context.Context) (*models.JackpotPool, error)

	// GetRecentChecks returns the latest jackpot audit rows
	GetRecentChecks(ctx context.Context, limit int) ([]*models.JackpotCheck, error)
}

// OddsService defines the interface for the operator odds table
type OddsService interface {
	// GetOddsTable returns the in-memory lookup for one analysis pass
	GetOddsTable(ctx context.Context) (models.OddsTable, error)

	// ListOdds returns every odds row
	ListOdds(ctx context.Context) ([]*models.OddsConfig, error)

	// SeedDefaults inserts missing odds rows at startup
	SeedDefaults(ctx context.Context) error
}

// ConfigService defines the interface for the avoid-win singleton
type ConfigService interface {
	// GetAvoidWinConfig returns the operator row, or the configured
	// defaults when none was ever saved
	GetAvoidWinConfig(ctx context.Context) (*models.AvoidWinConfig, error)

	// UpdateAvoidWinConfig validates and stores the operator row
	UpdateAvoidWinConfig(ctx context.Context, cfg *models.AvoidWinConfig) error
}

// ActiveBet pairs a ledger bet with its validated, odds-resolved form
type ActiveBet struct {
	Bet    *models.Bet
	Parsed *engine.ParsedBet
}
