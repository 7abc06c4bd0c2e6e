package chat

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
	"github.com/manifold-labs/genai-pipeline/internal/utils"
)

type Controller struct {
	pipe *pipeline.Pipeline
}

func NewController(p *pipeline.Pipeline) *Controller {
	return &Controller{pipe: p}
}

// Complete handles POST /chat/completions. Streaming requests are answered
// with server-sent events; everything else gets a single JSON body. Pipe
// reports its own failures as text, so this handler only deals with malformed
// payloads.
func (c *Controller) Complete(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /chat/completions payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	messages, err := req.SchemaMessages()
	if err != nil {
		utils.Zlog.Warn("invalid message content", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	result := c.pipe.Pipe(ctx.Request.Context(), req.UserMessage(), req.Model, messages, req.Body())

	if result.Stream != nil {
		streamEvents(ctx, result.Stream)
		return
	}

	resp := Response{
		Model:     req.Model,
		Content:   result.Text,
		Timestamp: time.Now().UTC(),
	}
	if idVal, exists := ctx.Get("request_id"); exists {
		if rid, ok := idVal.(string); ok {
			resp.RequestID = rid
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

// streamEvents forwards chunks to the client as they arrive. The reader is
// closed on any exit so the provider connection is released; a client
// disconnect cancels the request context, which ends the provider stream and
// unblocks Recv.
func streamEvents(ctx *gin.Context, reader *schema.StreamReader[string]) {
	defer reader.Close()

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	for {
		chunk, err := reader.Recv()
		if errors.Is(err, io.EOF) {
			ctx.SSEvent("done", "")
			ctx.Writer.Flush()
			return
		}
		if err != nil {
			utils.Zlog.Error("stream failed", zap.Error(err))
			ctx.SSEvent("error", err.Error())
			ctx.Writer.Flush()
			return
		}
		ctx.SSEvent("message", chunk)
		ctx.Writer.Flush()
	}
}
