package engine

import (
	"context"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/lucky5/draw-engine/internal/models"
	"golang.org/x/exp/slog"
)

// Config carries the engine tunables for one draw-analysis pass
type Config struct {
	Enabled                 bool
	AllowedWinProbability   float64
	MaxAnalysisCombinations int
	AnalysisTimeout         time.Duration
	Workers                 int // 0 means GOMAXPROCS
}

// Result is the committed decision for one draw
type Result struct {
	Outcome             Outcome
	Decision            models.DecisionType
	TotalBets           int
	WinningCombinations int // |unsafe| found during analysis
	AnalysisTime        time.Duration
	TimedOut            bool
	MinimizedPayout     float64 // aggregate payout of the pick when no safe outcome existed
}

// Engine selects draw outcomes. The analysis phase is pure and
// stateless; the engine itself only holds the randomness source.
type Engine struct {
	rng RNG
}

// NewEngine creates an Engine on the given randomness source
func NewEngine(rng RNG) *Engine {
	return &Engine{rng: rng}
}

// shardResult is one worker's partition of its outcome range
type shardResult struct {
	safe      []int32
	unsafe    []int32
	minPayout float64
	minIdx    []int32
	aborted   bool
}

// payoutEpsilon bounds float accumulation noise when comparing
// aggregate payouts for the minimization tie-break
const payoutEpsilon = 1e-9

// analyzeShard partitions outcomes [lo, hi) into safe and unsafe and
// tracks the minimum aggregate payout. It polls ctx periodically and
// returns a partial result when cancelled.
func analyzeShard(ctx context.Context, space *Space, bets []*ParsedBet, lo, hi int) shardResult {
	res := shardResult{minPayout: math.MaxFloat64}
	const checkEvery = 2048
	for i := lo; i < hi; i++ {
		if (i-lo)%checkEvery == 0 && ctx.Err() != nil {
			res.aborted = true
			return res
		}
		attrs := space.At(i)
		total := 0.0
		for _, b := range bets {
			total += Payout(attrs, b)
		}
		if total == 0 {
			res.safe = append(res.safe, int32(i))
			continue
		}
		res.unsafe = append(res.unsafe, int32(i))
		switch {
		case total < res.minPayout-payoutEpsilon:
			res.minPayout = total
			res.minIdx = res.minIdx[:0]
			res.minIdx = append(res.minIdx, int32(i))
		case total < res.minPayout+payoutEpsilon:
			res.minIdx = append(res.minIdx, int32(i))
		}
	}
	return res
}

// Decide runs the avoid-win decision rule over the enumerated space
// and always produces an outcome: timeouts degrade to a fallback
// decision, never to an error.
func (e *Engine) Decide(ctx context.Context, space *Space, bets []*ParsedBet, cfg Config) *Result {
	start := time.Now()
	res := &Result{TotalBets: len(bets)}

	if !cfg.Enabled {
		res.Outcome = OutcomeFromIndex(e.rng.Intn(SpaceSize))
		res.Decision = models.DecisionDisabledRandom
		res.AnalysisTime = time.Since(start)
		return res
	}

	if len(bets) == 0 {
		// Every outcome is trivially safe
		res.Outcome = OutcomeFromIndex(e.rng.Intn(SpaceSize))
		res.Decision = models.DecisionAvoided
		res.AnalysisTime = time.Since(start)
		return res
	}

	analysisCtx := ctx
	if cfg.AnalysisTimeout > 0 {
		var cancel context.CancelFunc
		analysisCtx, cancel = context.WithTimeout(ctx, cfg.AnalysisTimeout)
		defer cancel()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > space.Len() {
		workers = 1
	}

	shards := make([]shardResult, workers)
	var wg sync.WaitGroup
	chunk := (space.Len() + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > space.Len() {
			hi = space.Len()
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			shards[w] = analyzeShard(analysisCtx, space, bets, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	var safe, unsafe, minIdx []int32
	minPayout := math.MaxFloat64
	timedOut := false
	for _, s := range shards {
		safe = append(safe, s.safe...)
		unsafe = append(unsafe, s.unsafe...)
		timedOut = timedOut || s.aborted
		switch {
		case s.minPayout < minPayout-payoutEpsilon:
			minPayout = s.minPayout
			minIdx = append(minIdx[:0], s.minIdx...)
		case s.minPayout < minPayout+payoutEpsilon:
			minIdx = append(minIdx, s.minIdx...)
		}
	}
	res.WinningCombinations = len(unsafe)
	res.TimedOut = timedOut

	if timedOut {
		// Fall back to whatever safe outcomes were found, or a fully
		// random outcome if none were found yet.
		if len(safe) > 0 {
			res.Outcome = space.At(int(safe[e.rng.Intn(len(safe))])).Outcome
		} else {
			res.Outcome = OutcomeFromIndex(e.rng.Intn(SpaceSize))
		}
		res.Decision = models.DecisionTimeoutFallback
		res.AnalysisTime = time.Since(start)
		slog.Warn("Outcome analysis timed out, falling back",
			"safeFound", len(safe), "unsafeFound", len(unsafe), "analysisTime", res.AnalysisTime)
		return res
	}

	r := e.rng.Float64()
	switch {
	case r < cfg.AllowedWinProbability && len(unsafe) > 0:
		res.Outcome = space.At(int(unsafe[e.rng.Intn(len(unsafe))])).Outcome
		res.Decision = models.DecisionAllowedWin
	case len(safe) > 0:
		res.Outcome = space.At(int(safe[e.rng.Intn(len(safe))])).Outcome
		res.Decision = models.DecisionAvoided
	default:
		// Every outcome pays someone; minimize the damage
		pick := minIdx[e.rng.Intn(len(minIdx))]
		res.Outcome = space.At(int(pick)).Outcome
		res.Decision = models.DecisionAvoided
		res.MinimizedPayout = minPayout
	}
	res.AnalysisTime = time.Since(start)
	return res
}
