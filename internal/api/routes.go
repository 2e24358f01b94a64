package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up the API routes
func SetupRoutes(handler *Handler) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(CORS())
	router.Use(gin.Logger())

	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		repos := v1.Group("/repos/:owner/:repo")
		{
			repos.GET("/pulls/:number/comments", handler.GetPullRequestComments)
			repos.POST("/runs", handler.CreateRun)
		}

		runs := v1.Group("/runs")
		{
			runs.GET("", handler.ListRuns)
			runs.GET("/:id", handler.GetRun)
			runs.GET("/:id/summary", handler.GetRunSummary)
		}
	}

	return router
}
