package models

import (
	"github.com/gin-gonic/gin"

	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
)

// RegisterRoutes registers the catalog endpoints.
func RegisterRoutes(router *gin.Engine, p *pipeline.Pipeline) {
	ctrl := NewController(p)
	router.GET("/models", ctrl.List)
	router.POST("/models/refresh", ctrl.Refresh)
}
