package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lucky5/draw-engine/internal/models"
	"github.com/lucky5/draw-engine/internal/services"
)

// IssueHandler handles issue-related HTTP requests
type IssueHandler struct {
	issueService services.IssueService
	defaultType  string
}

// NewIssueHandler creates a new IssueHandler
func NewIssueHandler(issueService services.IssueService, defaultType string) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
		defaultType:  defaultType,
	}
}

func (h *IssueHandler) lotteryType(c *gin.Context) string {
	if lt := c.Query("lotteryType"); lt != "" {
		return lt
	}
	return h.defaultType
}

// GetCountdown handles GET /issues/countdown
func (h *IssueHandler) GetCountdown(c *gin.Context) {
	countdown, err := h.issueService.GetCountdown(c.Request.Context(), h.lotteryType(c))
	if err != nil {
		if errors.Is(err, models.ErrNoPendingIssue) {
			// The clock opens the next issue within a second
			c.JSON(http.StatusOK, gin.H{"generating": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve countdown: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, countdown)
}

// GetCurrentIssue handles GET /issues/current
func (h *IssueHandler) GetCurrentIssue(c *gin.Context) {
	issue, err := h.issueService.CurrentIssue(c.Request.Context(), h.lotteryType(c))
	if err != nil {
		if errors.Is(err, models.ErrNoPendingIssue) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No pending issue"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, issue)
}
