package valves

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
	"github.com/manifold-labs/genai-pipeline/internal/utils"
)

// Request carries the replacement valves from the host.
type Request struct {
	GoogleAPIKey string `json:"GOOGLE_API_KEY"`
}

type Controller struct {
	pipe *pipeline.Pipeline
}

func NewController(p *pipeline.Pipeline) *Controller {
	return &Controller{pipe: p}
}

// Update handles POST /valves: replaces the valves wholesale and refreshes the
// catalog under the new credentials.
func (c *Controller) Update(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /valves payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.pipe.OnValvesUpdated(ctx.Request.Context(), pipeline.Valves{GoogleAPIKey: req.GoogleAPIKey})

	ctx.JSON(http.StatusOK, gin.H{
		"models":    c.pipe.Models(),
		"timestamp": time.Now().UTC(),
	})
}
