package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lucky5/draw-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAvoidWinConfigDefaults(t *testing.T) {
	cfg := testConfig()
	svc := NewConfigService(&fakeAvoidWinRepo{}, cfg)

	got, err := svc.GetAvoidWinConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.Equal(t, cfg.Engine.AllowedWinProbability, got.AllowedWinProbability)
	assert.Equal(t, cfg.Engine.MaxAnalysisCombinations, got.MaxAnalysisCombinations)
	assert.Equal(t, cfg.Engine.AnalysisTimeoutSeconds, got.AnalysisTimeoutSeconds)
}

func TestUpdateAvoidWinConfigRoundTrip(t *testing.T) {
	repo := &fakeAvoidWinRepo{}
	svc := NewConfigService(repo, testConfig())

	saved := &models.AvoidWinConfig{
		Enabled:                 false,
		AllowedWinProbability:   0.001,
		MinBetAmount:            5,
		MaxAnalysisCombinations: 50000,
		AnalysisTimeoutSeconds:  3,
		UpdatedBy:               "ops-admin",
	}
	require.NoError(t, svc.UpdateAvoidWinConfig(context.Background(), saved))
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := svc.GetAvoidWinConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestUpdateAvoidWinConfigValidation(t *testing.T) {
	svc := NewConfigService(&fakeAvoidWinRepo{}, testConfig())
	base := models.AvoidWinConfig{
		Enabled:                 true,
		AllowedWinProbability:   0.001,
		MinBetAmount:            1,
		MaxAnalysisCombinations: 100000,
		AnalysisTimeoutSeconds:  5,
	}

	tests := []struct {
		name   string
		mutate func(*models.AvoidWinConfig)
	}{
		{"probability above one", func(c *models.AvoidWinConfig) { c.AllowedWinProbability = 1.5 }},
		{"negative probability", func(c *models.AvoidWinConfig) { c.AllowedWinProbability = -0.1 }},
		{"negative min bet", func(c *models.AvoidWinConfig) { c.MinBetAmount = -1 }},
		{"zero combinations", func(c *models.AvoidWinConfig) { c.MaxAnalysisCombinations = 0 }},
		{"zero timeout", func(c *models.AvoidWinConfig) { c.AnalysisTimeoutSeconds = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := svc.UpdateAvoidWinConfig(context.Background(), &cfg)
			var cfgErr *models.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "want configuration error, got %v", err)
		})
	}
}
