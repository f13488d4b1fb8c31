package repositories

import (
	"context"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueRepository defines the interface for issue data operations
type IssueRepository interface {
	// Upsert inserts the issue keyed by (lotteryType, issueNo) and is a
	// no-op returning the existing row when it already exists.
	Upsert(ctx context.Context, issue *models.Issue) (*models.Issue, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)
	FindByIssueNo(ctx context.Context, lotteryType, issueNo string) (*models.Issue, error)
	// FindPending returns the single pending issue for the lottery
	// type, or models.ErrNoPendingIssue.
	FindPending(ctx context.Context, lotteryType string) (*models.Issue, error)
}

// BetRepository defines the read-only view of the bet ledger the
// engine consumes. Bets placed at or after placedBefore are excluded
// by timestamp comparison, not by locking the ledger.
type BetRepository interface {
	FindActiveByIssue(ctx context.Context, lotteryType, issueNo string, placedBefore time.Time) ([]*models.Bet, error)
}

// OutcomeRepository defines the interface for draw outcome records
type OutcomeRepository interface {
	FindByIssueNo(ctx context.Context, lotteryType, issueNo string) (*models.DrawOutcome, error)
	FindRecent(ctx context.Context, lotteryType string, limit int) ([]*models.DrawOutcome, error)
}

// DecisionLogRepository defines the interface for decision audit rows
type DecisionLogRepository interface {
	FindRecent(ctx context.Context, lotteryType string, limit int) ([]*models.DecisionLog, error)
}

// DrawRecorder commits one draw: the outcome insert, the issue status
// flip and the decision log append form a single atomic commit. A
// concurrent second draw of the same issue fails with
// models.ErrConcurrencyConflict.
type DrawRecorder interface {
	Commit(ctx context.Context, issue *models.Issue, outcome *models.DrawOutcome, decision *models.DecisionLog) error
}

// OddsRepository defines the interface for the operator odds table
type OddsRepository interface {
	FindAll(ctx context.Context) ([]*models.OddsConfig, error)
	// SeedDefaults inserts rows that do not exist yet; existing
	// operator-tuned rows are left untouched.
	SeedDefaults(ctx context.Context, rows []*models.OddsConfig) error
}

// AvoidWinConfigRepository defines the interface for the engine's
// operator-tunable singleton
type AvoidWinConfigRepository interface {
	Get(ctx context.Context) (*models.AvoidWinConfig, error)
	Upsert(ctx context.Context, cfg *models.AvoidWinConfig) error
}

// JackpotRepository defines the interface for the super-jackpot pool
// and its audit trail
type JackpotRepository interface {
	GetPool(ctx context.Context, floor float64) (*models.JackpotPool, error)
	AddContribution(ctx context.Context, amount float64) error
	// PayAndReset returns the amount paid and resets the pool to floor
	PayAndReset(ctx context.Context, floor float64) (float64, error)
	CreateCheck(ctx context.Context, check *models.JackpotCheck) error
	FindRecentChecks(ctx context.Context, limit int) ([]*models.JackpotCheck, error)
}
