package valves

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/manifold-labs/genai-pipeline/internal/pipeline"
	"github.com/manifold-labs/genai-pipeline/internal/provider"
)

type stubGenerator struct{}

func (stubGenerator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (string, error) {
	return "", nil
}

func (stubGenerator) GenerateStream(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) *schema.StreamReader[string] {
	return schema.StreamReaderFromArray[string](nil)
}

func (stubGenerator) ListModels(context.Context) ([]provider.ModelInfo, error) {
	return []provider.ModelInfo{{
		Name:             "models/gemini-1.5-flash",
		DisplayName:      "Gemini 1.5 Flash",
		SupportedActions: []string{"generateContent"},
	}}, nil
}

func TestUpdateReplacesValvesAndRefreshes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := pipeline.New(
		pipeline.Valves{},
		pipeline.WithGeneratorFactory(func(context.Context, string) (provider.Generator, error) {
			return stubGenerator{}, nil
		}),
	)
	router := gin.New()
	RegisterRoutes(router, p)

	req := httptest.NewRequest(http.MethodPost, "/valves", strings.NewReader(`{"GOOGLE_API_KEY": "new-key"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new-key", p.Valves().GoogleAPIKey)
	require.Len(t, p.Models(), 1)
	assert.Equal(t, "gemini-1.5-flash", p.Models()[0].ID)
}
