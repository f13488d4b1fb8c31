package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/lucky5/draw-engine/internal/config"
	"github.com/lucky5/draw-engine/internal/handlers"
	"github.com/lucky5/draw-engine/internal/middleware"
)

// HandlerDependencies bundles the wired handlers for router setup
type HandlerDependencies struct {
	Issue   *handlers.IssueHandler
	Draw    *handlers.DrawHandler
	Odds    *handlers.OddsHandler
	Config  *handlers.ConfigHandler
	Jackpot *handlers.JackpotHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps *HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		issues := public.Group("/issues")
		{
			issues.GET("/countdown", deps.Issue.GetCountdown)
			issues.GET("/current", deps.Issue.GetCurrentIssue)
			issues.GET("/:issueNo/outcome", deps.Draw.GetOutcomeByIssueNo)
		}

		public.GET("/outcomes", deps.Draw.GetRecentOutcomes)
		public.GET("/odds", deps.Odds.ListOdds)
		public.GET("/jackpot/status", deps.Jackpot.GetStatus)
	}

	// Protected operator routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		draws := protected.Group("/draws")
		{
			draws.POST("/manual", deps.Draw.ManualDraw)
		}

		protected.GET("/decision-logs", deps.Draw.GetDecisionLogs)
		protected.GET("/jackpot/checks", deps.Jackpot.GetRecentChecks)

		configGroup := protected.Group("/config")
		{
			configGroup.GET("/avoid-win", deps.Config.GetAvoidWinConfig)
			configGroup.PUT("/avoid-win", deps.Config.UpdateAvoidWinConfig)
		}
	}

	return router
}
