package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/robfig/cron/v3"
	"golang.org/x/exp/slog"
)

// tickBudget bounds a single tick end to end, covering analysis plus
// the commit retries
const tickBudget = 55 * time.Second

// Scheduler drives the 1Hz issue clock. One job per lottery type; each
// tick re-derives what should exist from the wall clock, so a stopped
// or delayed process heals on its next tick.
type Scheduler struct {
	cron *cron.Cron
	jobs []*issueTickJob
}

// NewScheduler creates a scheduler with one tick job per lottery type
func NewScheduler(issues IssueService, draws DrawService, lotteryTypes []string) *Scheduler {
	s := &Scheduler{cron: cron.New(cron.WithSeconds())}
	for _, lt := range lotteryTypes {
		s.jobs = append(s.jobs, &issueTickJob{
			lotteryType: lt,
			issues:      issues,
			draws:       draws,
		})
	}
	return s
}

// Start registers the tick jobs and starts the cron loop
func (s *Scheduler) Start() error {
	for _, job := range s.jobs {
		if _, err := s.cron.AddJob("@every 1s", job); err != nil {
			return err
		}
		slog.Info("Issue clock started", "lotteryType", job.lotteryType)
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running tick to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Issue clock stopped")
}

// issueTickJob is the per-type actor. The mutex keeps ticks for one
// type strictly serial; a tick that overruns the next second is skipped
// rather than stacked.
type issueTickJob struct {
	lotteryType string
	mu          sync.Mutex
	issues      IssueService
	draws       DrawService
}

// Run executes one tick
func (j *issueTickJob) Run() {
	if !j.mu.TryLock() {
		return
	}
	defer j.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), tickBudget)
	defer cancel()

	now := time.Now()
	issue, err := j.issues.CurrentIssue(ctx, j.lotteryType)
	if errors.Is(err, models.ErrNoPendingIssue) {
		// Cold start or gap after downtime: open the current minute.
		// Never pre-generate a future issue.
		if _, err := j.issues.GenerateIssue(ctx, j.lotteryType, now); err != nil {
			slog.Error("Issue generation failed", "error", err, "lotteryType", j.lotteryType)
		}
		return
	}
	if err != nil {
		slog.Error("Issue lookup failed", "error", err, "lotteryType", j.lotteryType)
		return
	}

	if now.Before(issue.DrawTime) {
		return
	}

	if _, err := j.draws.ExecuteDraw(ctx, issue); err != nil {
		// Leave the issue pending; the next tick retries the draw
		slog.Error("Draw execution failed", "error", err,
			"lotteryType", j.lotteryType, "issueNo", issue.IssueNo)
		return
	}

	// The drawn issue's minute has passed, so this opens the live one
	if _, err := j.issues.GenerateIssue(ctx, j.lotteryType, time.Now()); err != nil {
		slog.Error("Issue generation failed", "error", err, "lotteryType", j.lotteryType)
	}
}
