package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultsCoversEveryGame(t *testing.T) {
	repo := &fakeOddsRepo{}
	svc := NewOddsService(repo)
	require.NoError(t, svc.SeedDefaults(context.Background()))

	table, err := svc.GetOddsTable(context.Background())
	require.NoError(t, err)

	for _, key := range []struct{ game, selection string }{
		{models.GameDigit, "straight"},
		{models.GameDoubleFace, "prime"},
		{models.GameDoubleFace, "sum_prime"},
		{models.GameDoubleFace, "sum_big"},
		{models.GameSumBigSmall, "big"},
		{models.GameSumOddEven, "even"},
		{models.GameTwoDigit, "straight"},
		{models.GameThreeDigit, "straight"},
		{models.GameSpan, "0"},
		{models.GameSpan, "9"},
		{models.GameDragonTiger, "tie"},
		{models.GameBull, "none"},
		{models.GameBull, "5"},
		{models.GameBull, "bullbull"},
		{models.GamePoker, "five_kind"},
		{models.GamePoker, "high_card"},
		{models.GameBullFace, "odd"},
	} {
		_, ok := table.Lookup(key.game, key.selection)
		assert.True(t, ok, "missing odds row %s/%s", key.game, key.selection)
	}
}

func TestSeedDefaultsKeepsOperatorRows(t *testing.T) {
	repo := &fakeOddsRepo{rows: []*models.OddsConfig{
		{GameType: models.GameDigit, Selection: "straight", Odds: 9.5}, // operator-tuned
	}}
	svc := NewOddsService(repo)
	require.NoError(t, svc.SeedDefaults(context.Background()))

	table, err := svc.GetOddsTable(context.Background())
	require.NoError(t, err)
	odds, ok := table.Lookup(models.GameDigit, "straight")
	require.True(t, ok)
	assert.Equal(t, 9.5, odds)
}

func TestGetOddsTableEmpty(t *testing.T) {
	svc := NewOddsService(&fakeOddsRepo{})
	_, err := svc.GetOddsTable(context.Background())
	var cfgErr *models.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}
