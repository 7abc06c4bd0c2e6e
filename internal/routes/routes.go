package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manifold-labs/genai-pipeline/internal/api/chat"
	"github.com/manifold-labs/genai-pipeline/internal/api/models"
	"github.com/manifold-labs/genai-pipeline/internal/api/valves"
	"github.com/manifold-labs/genai-pipeline/internal/config"
	"github.com/manifold-labs/genai-pipeline/internal/middleware"
	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, p *pipeline.Pipeline, cfg *config.Config) {
	// Apply global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Setup route groups
	SetupHealthRoutes(router, p, cfg)
	chat.RegisterRoutes(router, p)
	models.RegisterRoutes(router, p)
	valves.RegisterRoutes(router, p)
	Setup404Handler(router)
}
