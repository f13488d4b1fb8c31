package services

import (
	"context"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes. They implement just enough of the
// persistence contracts for the service pipelines to run single
// threaded under test.

type fakeIssueRepo struct {
	issues []*models.Issue
}

func (r *fakeIssueRepo) Upsert(_ context.Context, issue *models.Issue) (*models.Issue, error) {
	for _, existing := range r.issues {
		if existing.LotteryType == issue.LotteryType && existing.IssueNo == issue.IssueNo {
			return existing, nil
		}
	}
	stored := *issue
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.issues = append(r.issues, &stored)
	return &stored, nil
}

func (r *fakeIssueRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Issue, error) {
	for _, issue := range r.issues {
		if issue.ID == id {
			return issue, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeIssueRepo) FindByIssueNo(_ context.Context, lotteryType, issueNo string) (*models.Issue, error) {
	for _, issue := range r.issues {
		if issue.LotteryType == lotteryType && issue.IssueNo == issueNo {
			return issue, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeIssueRepo) FindPending(_ context.Context, lotteryType string) (*models.Issue, error) {
	for _, issue := range r.issues {
		if issue.LotteryType == lotteryType && issue.Status == models.IssueStatusPending {
			return issue, nil
		}
	}
	return nil, models.ErrNoPendingIssue
}

type fakeBetRepo struct {
	bets []*models.Bet
}

func (r *fakeBetRepo) FindActiveByIssue(_ context.Context, lotteryType, issueNo string, placedBefore time.Time) ([]*models.Bet, error) {
	var out []*models.Bet
	for _, bet := range r.bets {
		if bet.LotteryType == lotteryType && bet.IssueNo == issueNo && bet.PlacedAt.Before(placedBefore) {
			out = append(out, bet)
		}
	}
	return out, nil
}

type fakeOutcomeRepo struct {
	outcomes []*models.DrawOutcome
}

func (r *fakeOutcomeRepo) FindByIssueNo(_ context.Context, lotteryType, issueNo string) (*models.DrawOutcome, error) {
	for _, o := range r.outcomes {
		if o.LotteryType == lotteryType && o.IssueNo == issueNo {
			return o, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeOutcomeRepo) FindRecent(_ context.Context, lotteryType string, limit int) ([]*models.DrawOutcome, error) {
	var out []*models.DrawOutcome
	for i := len(r.outcomes) - 1; i >= 0 && len(out) < limit; i-- {
		if r.outcomes[i].LotteryType == lotteryType {
			out = append(out, r.outcomes[i])
		}
	}
	return out, nil
}

type fakeDecisionRepo struct {
	logs []*models.DecisionLog
}

func (r *fakeDecisionRepo) FindRecent(_ context.Context, lotteryType string, limit int) ([]*models.DecisionLog, error) {
	var out []*models.DecisionLog
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.logs[i].LotteryType == lotteryType {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

// fakeRecorder enforces the same single-draw rule as the real
// transaction: a second commit for the same issue conflicts.
// transientFailures injects that many failed attempts first.
type fakeRecorder struct {
	outcomes          *fakeOutcomeRepo
	decisions         *fakeDecisionRepo
	drawn             map[string]bool
	commits           int
	transientFailures int
}

func (r *fakeRecorder) Commit(_ context.Context, issue *models.Issue, outcome *models.DrawOutcome, decision *models.DecisionLog) error {
	r.commits++
	if r.transientFailures > 0 {
		r.transientFailures--
		return &models.PersistenceError{Op: "commit", Err: context.DeadlineExceeded}
	}
	if r.drawn == nil {
		r.drawn = make(map[string]bool)
	}
	key := issue.LotteryType + "/" + issue.IssueNo
	if r.drawn[key] {
		return models.ErrConcurrencyConflict
	}
	r.drawn[key] = true
	issue.Status = models.IssueStatusDrawn
	r.outcomes.outcomes = append(r.outcomes.outcomes, outcome)
	r.decisions.logs = append(r.decisions.logs, decision)
	return nil
}

type fakeOddsRepo struct {
	rows []*models.OddsConfig
}

func (r *fakeOddsRepo) FindAll(_ context.Context) ([]*models.OddsConfig, error) {
	return r.rows, nil
}

func (r *fakeOddsRepo) SeedDefaults(_ context.Context, rows []*models.OddsConfig) error {
	existing := make(map[string]bool, len(r.rows))
	for _, row := range r.rows {
		existing[row.GameType+"/"+row.Selection] = true
	}
	for _, row := range rows {
		if !existing[row.GameType+"/"+row.Selection] {
			r.rows = append(r.rows, row)
		}
	}
	return nil
}

type fakeAvoidWinRepo struct {
	cfg *models.AvoidWinConfig
}

func (r *fakeAvoidWinRepo) Get(_ context.Context) (*models.AvoidWinConfig, error) {
	if r.cfg == nil {
		return nil, mongo.ErrNoDocuments
	}
	return r.cfg, nil
}

func (r *fakeAvoidWinRepo) Upsert(_ context.Context, cfg *models.AvoidWinConfig) error {
	r.cfg = cfg
	return nil
}

type fakeJackpotRepo struct {
	pool   models.JackpotPool
	checks []*models.JackpotCheck
}

func (r *fakeJackpotRepo) GetPool(_ context.Context, floor float64) (*models.JackpotPool, error) {
	if r.pool.CurrentAmount < floor {
		r.pool.CurrentAmount = floor
	}
	r.pool.PoolKey = "super"
	return &r.pool, nil
}

func (r *fakeJackpotRepo) AddContribution(_ context.Context, amount float64) error {
	r.pool.CurrentAmount += amount
	r.pool.TotalContributions += amount
	return nil
}

func (r *fakeJackpotRepo) PayAndReset(_ context.Context, floor float64) (float64, error) {
	paid := r.pool.CurrentAmount
	r.pool.CurrentAmount = floor
	r.pool.TotalPayouts += paid
	return paid, nil
}

func (r *fakeJackpotRepo) CreateCheck(_ context.Context, check *models.JackpotCheck) error {
	r.checks = append(r.checks, check)
	return nil
}

func (r *fakeJackpotRepo) FindRecentChecks(_ context.Context, limit int) ([]*models.JackpotCheck, error) {
	var out []*models.JackpotCheck
	for i := len(r.checks) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.checks[i])
	}
	return out, nil
}

// fixedRNG replays one float value and always picks index zero
type fixedRNG struct {
	value float64
}

func (r fixedRNG) Float64() float64 { return r.value }
func (r fixedRNG) Intn(n int) int   { return 0 }
