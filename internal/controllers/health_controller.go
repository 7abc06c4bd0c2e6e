package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
)

type HealthController struct {
	pipe *pipeline.Pipeline
}

func NewHealthController(p *pipeline.Pipeline) *HealthController {
	return &HealthController{pipe: p}
}

// HealthCheck godoc
// @Summary Check application health
// @Description Check if the pipeline is healthy and whether a provider key is configured
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthController) HealthCheck(c *gin.Context) {
	configured := h.pipe.Valves().GoogleAPIKey != ""

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"key_configured": configured,
		"models":         len(h.pipe.Models()),
		"timestamp":      time.Now().UTC(),
	})
}

// Liveness godoc
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (h *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}
