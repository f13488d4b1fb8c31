package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// DrawHandler handles draw-related HTTP requests
type DrawHandler struct {
	drawService services.DrawService
	defaultType string
}

// NewDrawHandler creates a new DrawHandler
func NewDrawHandler(drawService services.DrawService, defaultType string) *DrawHandler {
	return &DrawHandler{
		drawService: drawService,
		defaultType: defaultType,
	}
}

func (h *DrawHandler) lotteryType(c *gin.Context) string {
	if lt := c.Query("lotteryType"); lt != "" {
		return lt
	}
	return h.defaultType
}

func limitParam(c *gin.Context, fallback, max int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// GetOutcomeByIssueNo handles GET /issues/:issueNo/outcome
func (h *DrawHandler) GetOutcomeByIssueNo(c *gin.Context) {
	outcome, err := h.drawService.GetOutcomeByIssueNo(c.Request.Context(), h.lotteryType(c), c.Param("issueNo"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Outcome not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve outcome: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// GetRecentOutcomes handles GET /outcomes
func (h *DrawHandler) GetRecentOutcomes(c *gin.Context) {
	outcomes, err := h.drawService.GetRecentOutcomes(c.Request.Context(), h.lotteryType(c), limitParam(c, 20, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve outcomes: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, outcomes)
}

// GetDecisionLogs handles GET /decision-logs
func (h *DrawHandler) GetDecisionLogs(c *gin.Context) {
	logs, err := h.drawService.GetRecentDecisions(c.Request.Context(), h.lotteryType(c), limitParam(c, 20, 100))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve decision logs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ManualDrawRequest is the POST /draws/manual payload. Numbers are
// optional; when omitted the overdue issue is drawn through the normal
// pipeline.
type ManualDrawRequest struct {
	IssueID string `json:"issue_id" binding:"required"`
	Numbers string `json:"numbers"`
}

// ManualDraw handles POST /draws/manual
func (h *DrawHandler) ManualDraw(c *gin.Context) {
	var request ManualDrawRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	issueID, err := primitive.ObjectIDFromHex(request.IssueID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID format"})
		return
	}

	outcome, err := h.drawService.ManualDraw(c.Request.Context(), issueID, request.Numbers)
	if err != nil {
		var cfgErr *models.ConfigurationError
		switch {
		case errors.Is(err, models.ErrConcurrencyConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Issue is already drawn"})
		case errors.As(err, &cfgErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error()})
		case errors.Is(err, mongo.ErrNoDocuments):
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to execute draw: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, outcome)
}
