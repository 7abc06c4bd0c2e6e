package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
)

// RegisterRoutes registers the chat completion endpoint.
func RegisterRoutes(router *gin.Engine, p *pipeline.Pipeline) {
	ctrl := NewController(p)
	router.POST("/chat/completions", ctrl.Complete)
}
