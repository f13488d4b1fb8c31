package services

import (
	"context"
	"errors"
	"time"

	"github.com/lucky5/draw-engine/internal/config"
	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure ConfigServiceImpl implements ConfigService
var _ ConfigService = (*ConfigServiceImpl)(nil)

// ConfigServiceImpl manages the avoid-win singleton row
type ConfigServiceImpl struct {
	configRepo repositories.AvoidWinConfigRepository
	defaults   config.EngineConfig
}

// NewConfigService creates a new ConfigServiceImpl
func NewConfigService(configRepo repositories.AvoidWinConfigRepository, cfg *config.Config) *ConfigServiceImpl {
	return &ConfigServiceImpl{
		configRepo: configRepo,
		defaults:   cfg.Engine,
	}
}

// GetAvoidWinConfig returns the stored operator row, falling back to
// the process defaults when nothing was ever saved
func (s *ConfigServiceImpl) GetAvoidWinConfig(ctx context.Context) (*models.AvoidWinConfig, error) {
	stored, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.AvoidWinConfig{
				Enabled:                 s.defaults.Enabled,
				AllowedWinProbability:   s.defaults.AllowedWinProbability,
				MinBetAmount:            s.defaults.MinBetAmount,
				MaxAnalysisCombinations: s.defaults.MaxAnalysisCombinations,
				AnalysisTimeoutSeconds:  s.defaults.AnalysisTimeoutSeconds,
			}, nil
		}
		return nil, &models.PersistenceError{Op: "load avoid-win config", Err: err}
	}
	return stored, nil
}

// UpdateAvoidWinConfig validates and stores the operator row
func (s *ConfigServiceImpl) UpdateAvoidWinConfig(ctx context.Context, cfg *models.AvoidWinConfig) error {
	if cfg.AllowedWinProbability < 0 || cfg.AllowedWinProbability > 1 {
		return &models.ConfigurationError{Field: "allowedWinProbability", Reason: "must be within [0, 1]"}
	}
	if cfg.MinBetAmount < 0 {
		return &models.ConfigurationError{Field: "minBetAmount", Reason: "must not be negative"}
	}
	if cfg.MaxAnalysisCombinations <= 0 {
		return &models.ConfigurationError{Field: "maxAnalysisCombinations", Reason: "must be positive"}
	}
	if cfg.AnalysisTimeoutSeconds <= 0 {
		return &models.ConfigurationError{Field: "analysisTimeoutSeconds", Reason: "must be positive"}
	}

	cfg.UpdatedAt = time.Now()
	if err := s.configRepo.Upsert(ctx, cfg); err != nil {
		return &models.PersistenceError{Op: "save avoid-win config", Err: err}
	}
	slog.Info("Avoid-win config updated",
		"enabled", cfg.Enabled,
		"allowedWinProbability", cfg.AllowedWinProbability,
		"updatedBy", cfg.UpdatedBy)
	return nil
}
