package services

import (
	"context"
	"testing"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTickJob(t *testing.T) (*issueTickJob, *drawHarness) {
	t.Helper()
	h := newDrawHarness(t, fixedRNG{value: 0.9})
	issues := NewIssueService(h.issueRepo, testConfig())
	return &issueTickJob{
		lotteryType: "LUCKY5",
		issues:      issues,
		draws:       h.svc,
	}, h
}

func TestTickColdStartGeneratesIssue(t *testing.T) {
	job, h := newTickJob(t)

	job.Run()

	require.Len(t, h.issueRepo.issues, 1)
	issue := h.issueRepo.issues[0]
	assert.Equal(t, models.IssueStatusPending, issue.Status)
	assert.Equal(t, IssueNumber(issue.StartTime), issue.IssueNo)
	assert.Equal(t, issue.StartTime, issue.StartTime.Truncate(time.Minute))
	assert.Zero(t, h.recorder.commits)
}

func TestTickWaitsForDrawTime(t *testing.T) {
	job, h := newTickJob(t)

	// A live issue whose draw time has not arrived
	pending := h.addIssue(t, models.IssueStatusPending)
	pending.StartTime = time.Now()
	pending.EndTime = pending.StartTime.Add(50 * time.Second)
	pending.DrawTime = pending.StartTime.Add(60 * time.Second)

	job.Run()

	assert.Zero(t, h.recorder.commits)
	assert.Equal(t, models.IssueStatusPending, pending.Status)
}

func TestTickDrawsOverdueIssueAndOpensNext(t *testing.T) {
	job, h := newTickJob(t)

	// An issue left over from two minutes ago, past its draw time
	stale, err := job.issues.GenerateIssue(context.Background(), "LUCKY5", time.Now().Add(-2*time.Minute))
	require.NoError(t, err)

	job.Run()

	assert.Equal(t, models.IssueStatusDrawn, stale.Status)
	assert.Equal(t, 1, h.recorder.commits)
	require.Len(t, h.outcomes.outcomes, 1)
	assert.Equal(t, stale.IssueNo, h.outcomes.outcomes[0].IssueNo)

	// The tick that drew the stale issue also opened the live one
	live, err := job.issues.CurrentIssue(context.Background(), "LUCKY5")
	require.NoError(t, err)
	assert.NotEqual(t, stale.IssueNo, live.IssueNo)
	assert.Equal(t, IssueNumber(live.StartTime), live.IssueNo)
}

func TestTickSkipsWhileDrawInFlight(t *testing.T) {
	job, _ := newTickJob(t)

	// Simulate an in-flight tick holding the lock
	require.True(t, job.mu.TryLock())
	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("overlapping tick should return immediately")
	}
	job.mu.Unlock()
}
