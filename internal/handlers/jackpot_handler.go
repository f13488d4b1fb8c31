package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lucky5/draw-engine/internal/services"
)

// JackpotHandler handles super-jackpot HTTP requests
type JackpotHandler struct {
	jackpotService services.JackpotService
}

// NewJackpotHandler creates a new JackpotHandler
func NewJackpotHandler(jackpotService services.JackpotService) *JackpotHandler {
	return &JackpotHandler{jackpotService: jackpotService}
}

// GetStatus handles GET /jackpot/status
func (h *JackpotHandler) GetStatus(c *gin.Context) {
	pool, err := h.jackpotService.GetStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve jackpot pool: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, pool)
}

// GetRecentChecks handles GET /jackpot/checks
func (h *JackpotHandler) GetRecentChecks(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	checks, err := h.jackpotService.GetRecentChecks(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve jackpot checks: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, checks)
}
