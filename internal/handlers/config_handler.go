package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/services"
)

// ConfigHandler handles avoid-win configuration HTTP requests
type ConfigHandler struct {
	configService services.ConfigService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(configService services.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// GetAvoidWinConfig handles GET /config/avoid-win
func (h *ConfigHandler) GetAvoidWinConfig(c *gin.Context) {
	cfg, err := h.configService.GetAvoidWinConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve config: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateAvoidWinRequest is the PUT /config/avoid-win payload
type UpdateAvoidWinRequest struct {
	Enabled                 bool    `json:"enabled"`
	AllowedWinProbability   float64 `json:"allowed_win_probability"`
	MinBetAmount            float64 `json:"min_bet_amount"`
	MaxAnalysisCombinations int     `json:"max_analysis_combinations" binding:"required"`
	AnalysisTimeoutSeconds  int     `json:"analysis_timeout_seconds" binding:"required"`
}

// UpdateAvoidWinConfig handles PUT /config/avoid-win
func (h *ConfigHandler) UpdateAvoidWinConfig(c *gin.Context) {
	var request UpdateAvoidWinRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	cfg := &models.AvoidWinConfig{
		Enabled:                 request.Enabled,
		AllowedWinProbability:   request.AllowedWinProbability,
		MinBetAmount:            request.MinBetAmount,
		MaxAnalysisCombinations: request.MaxAnalysisCombinations,
		AnalysisTimeoutSeconds:  request.AnalysisTimeoutSeconds,
		UpdatedBy:               c.GetString("userId"),
	}
	if err := h.configService.UpdateAvoidWinConfig(c.Request.Context(), cfg); err != nil {
		var cfgErr *models.ConfigurationError
		if errors.As(err, &cfgErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update config: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
