package valves

import (
	"github.com/gin-gonic/gin"

	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
)

// RegisterRoutes registers the valves update endpoint.
func RegisterRoutes(router *gin.Engine, p *pipeline.Pipeline) {
	ctrl := NewController(p)
	router.POST("/valves", ctrl.Update)
}
