package models

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
)

type Controller struct {
	pipe *pipeline.Pipeline
}

func NewController(p *pipeline.Pipeline) *Controller {
	return &Controller{pipe: p}
}

// List handles GET /models, returning the catalog as last refreshed. The
// sentinel "error" entry passes through untouched so hosts can surface it.
func (c *Controller) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"models":    c.pipe.Models(),
		"timestamp": time.Now().UTC(),
	})
}

// Refresh handles POST /models/refresh, re-pulling the provider catalog.
func (c *Controller) Refresh(ctx *gin.Context) {
	c.pipe.UpdateCatalog(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{
		"models":    c.pipe.Models(),
		"timestamp": time.Now().UTC(),
	})
}
