package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manifold-labs/genai-pipeline/internal/config"
	"github.com/manifold-labs/genai-pipeline/internal/controllers"
	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, p *pipeline.Pipeline, cfg *config.Config) {
	healthController := controllers.NewHealthController(p)
	systemController := controllers.NewSystemController(cfg)

	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	router.GET("/health", healthController.HealthCheck)
	router.GET("/health/live", healthController.Liveness)
	router.GET("/status", systemController.Status)
}
