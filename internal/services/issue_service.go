package services

import (
	"context"
	"time"

	"github.com/lucky5/draw-engine/internal/config"
	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure IssueServiceImpl implements IssueService
var _ IssueService = (*IssueServiceImpl)(nil)

// IssueNumber derives the issue number from a start time. The mapping
// is deterministic, so re-generating for the same start time can never
// mint a second number.
func IssueNumber(startTime time.Time) string {
	return startTime.Format("0601021504") // YYMMDDHHMM
}

// IssueServiceImpl handles issue generation and countdown queries
type IssueServiceImpl struct {
	issueRepo repositories.IssueRepository
	interval  time.Duration // start to draw
	betting   time.Duration // start to betting lock
}

// NewIssueService creates a new IssueServiceImpl
func NewIssueService(issueRepo repositories.IssueRepository, cfg *config.Config) *IssueServiceImpl {
	return &IssueServiceImpl{
		issueRepo: issueRepo,
		interval:  time.Duration(cfg.Lottery.IntervalSeconds) * time.Second,
		betting:   time.Duration(cfg.Lottery.BettingSeconds) * time.Second,
	}
}

// GenerateIssue creates the issue for the minute containing startTime.
// The repository upsert keyed by (lotteryType, issueNo) makes the call
// idempotent: a second invocation returns the existing row untouched.
func (s *IssueServiceImpl) GenerateIssue(ctx context.Context, lotteryType string, startTime time.Time) (*models.Issue, error) {
	start := startTime.Truncate(time.Minute)
	issue := &models.Issue{
		LotteryType: lotteryType,
		IssueNo:     IssueNumber(start),
		StartTime:   start,
		EndTime:     start.Add(s.betting),
		DrawTime:    start.Add(s.interval),
		Status:      models.IssueStatusPending,
	}

	stored, err := s.issueRepo.Upsert(ctx, issue)
	if err != nil {
		slog.Error("Failed to generate issue", "error", err, "lotteryType", lotteryType, "issueNo", issue.IssueNo)
		return nil, &models.PersistenceError{Op: "generate issue", Err: err}
	}
	slog.Info("Issue generated", "lotteryType", lotteryType, "issueNo", stored.IssueNo,
		"startTime", stored.StartTime, "drawTime", stored.DrawTime)
	return stored, nil
}

// GetCountdown returns the countdown view of the current pending issue
func (s *IssueServiceImpl) GetCountdown(ctx context.Context, lotteryType string) (*models.Countdown, error) {
	issue, err := s.issueRepo.FindPending(ctx, lotteryType)
	if err != nil {
		return nil, err
	}
	return CountdownFor(issue, time.Now()), nil
}

// CurrentIssue returns the current pending issue
func (s *IssueServiceImpl) CurrentIssue(ctx context.Context, lotteryType string) (*models.Issue, error) {
	return s.issueRepo.FindPending(ctx, lotteryType)
}

// CountdownFor computes the countdown of an issue at a given instant
func CountdownFor(issue *models.Issue, now time.Time) *models.Countdown {
	remaining := int64(issue.EndTime.Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	drawIn := int64(issue.DrawTime.Sub(now).Seconds())
	if drawIn < 0 {
		drawIn = 0
	}
	return &models.Countdown{
		IssueNo:          issue.IssueNo,
		RemainingSeconds: remaining,
		DrawInSeconds:    drawIn,
	}
}
