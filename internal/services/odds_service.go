package services

import (
	"context"
	"strconv"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure OddsServiceImpl implements OddsService
var _ OddsService = (*OddsServiceImpl)(nil)

// OddsServiceImpl serves the operator odds table. The evaluator takes
// every payout multiplier from here; nothing is hardcoded in the
// engine.
type OddsServiceImpl struct {
	oddsRepo repositories.OddsRepository
}

// NewOddsService creates a new OddsServiceImpl
func NewOddsService(oddsRepo repositories.OddsRepository) *OddsServiceImpl {
	return &OddsServiceImpl{oddsRepo: oddsRepo}
}

// GetOddsTable returns the in-memory lookup for one analysis pass
func (s *OddsServiceImpl) GetOddsTable(ctx context.Context) (models.OddsTable, error) {
	rows, err := s.oddsRepo.FindAll(ctx)
	if err != nil {
		return nil, &models.PersistenceError{Op: "load odds", Err: err}
	}
	if len(rows) == 0 {
		return nil, &models.ConfigurationError{Field: "odds", Reason: "odds table is empty"}
	}
	return models.NewOddsTable(rows), nil
}

// ListOdds returns every odds row
func (s *OddsServiceImpl) ListOdds(ctx context.Context) ([]*models.OddsConfig, error) {
	return s.oddsRepo.FindAll(ctx)
}

// SeedDefaults inserts any missing odds rows at startup without
// touching operator-tuned values
func (s *OddsServiceImpl) SeedDefaults(ctx context.Context) error {
	rows := defaultOddsRows()
	if err := s.oddsRepo.SeedDefaults(ctx, rows); err != nil {
		return &models.PersistenceError{Op: "seed odds", Err: err}
	}
	slog.Info("Odds defaults ensured", "rows", len(rows))
	return nil
}

// defaultOddsRows is the factory odds sheet. Operators overwrite
// individual rows through the admin surface; seeding never clobbers an
// existing row.
func defaultOddsRows() []*models.OddsConfig {
	rows := []*models.OddsConfig{
		{GameType: models.GameDigit, Selection: "straight", Odds: 9.8},

		{GameType: models.GameDoubleFace, Selection: "big", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "small", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "odd", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "even", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "prime", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "composite", Odds: 1.98},

		{GameType: models.GameDoubleFace, Selection: "sum_big", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "sum_small", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "sum_odd", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "sum_even", Odds: 1.98},
		{GameType: models.GameDoubleFace, Selection: "sum_prime", Odds: 2.56},
		{GameType: models.GameDoubleFace, Selection: "sum_composite", Odds: 1.66},

		{GameType: models.GameSumBigSmall, Selection: "big", Odds: 1.98},
		{GameType: models.GameSumBigSmall, Selection: "small", Odds: 1.98},
		{GameType: models.GameSumOddEven, Selection: "odd", Odds: 1.98},
		{GameType: models.GameSumOddEven, Selection: "even", Odds: 1.98},

		{GameType: models.GameTwoDigit, Selection: "straight", Odds: 83},
		{GameType: models.GameThreeDigit, Selection: "straight", Odds: 690},

		{GameType: models.GameDragonTiger, Selection: "dragon", Odds: 1.98},
		{GameType: models.GameDragonTiger, Selection: "tiger", Odds: 1.98},
		{GameType: models.GameDragonTiger, Selection: "tie", Odds: 9},

		{GameType: models.GameBull, Selection: "none", Odds: 2.66},
		{GameType: models.GameBull, Selection: "bullbull", Odds: 9},

		{GameType: models.GamePoker, Selection: "five_kind", Odds: 980},
		{GameType: models.GamePoker, Selection: "four_kind", Odds: 220},
		{GameType: models.GamePoker, Selection: "full_house", Odds: 110},
		{GameType: models.GamePoker, Selection: "straight", Odds: 32},
		{GameType: models.GamePoker, Selection: "three_kind", Odds: 12},
		{GameType: models.GamePoker, Selection: "two_pair", Odds: 9},
		{GameType: models.GamePoker, Selection: "one_pair", Odds: 2.3},
		{GameType: models.GamePoker, Selection: "high_card", Odds: 3.8},

		{GameType: models.GameBullFace, Selection: "big", Odds: 2.3},
		{GameType: models.GameBullFace, Selection: "small", Odds: 2.3},
		{GameType: models.GameBullFace, Selection: "odd", Odds: 2.45},
		{GameType: models.GameBullFace, Selection: "even", Odds: 2.2},
	}

	// Span odds are symmetric around the middle spans
	spanOdds := []float64{71, 14.8, 8.1, 5.7, 4.5, 4.5, 5.7, 8.1, 14.8, 71}
	for v, odds := range spanOdds {
		rows = append(rows, &models.OddsConfig{
			GameType: models.GameSpan, Selection: strconv.Itoa(v), Odds: odds,
		})
	}
	// Bull ranks 1..9 pay slightly less the higher the rank
	for rank := 1; rank <= 9; rank++ {
		rows = append(rows, &models.OddsConfig{
			GameType: models.GameBull, Selection: strconv.Itoa(rank), Odds: 9.9 - 0.1*float64(rank-1),
		})
	}
	return rows
}
