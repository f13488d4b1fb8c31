package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lucky5/draw-engine/internal/services"
)

// OddsHandler handles odds-table HTTP requests
type OddsHandler struct {
	oddsService services.OddsService
}

// NewOddsHandler creates a new OddsHandler
func NewOddsHandler(oddsService services.OddsService) *OddsHandler {
	return &OddsHandler{oddsService: oddsService}
}

// ListOdds handles GET /odds
func (h *OddsHandler) ListOdds(c *gin.Context) {
	rows, err := h.oddsService.ListOdds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve odds: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}
