package chat

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

type stubGenerator struct {
	text   string
	chunks []string
}

func (s *stubGenerator) GenerateContent(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (string, error) {
	return s.text, nil
}

func (s *stubGenerator) GenerateStream(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) *schema.StreamReader[string] {
	return schema.StreamReaderFromArray(s.chunks)
}

func (s *stubGenerator) ListModels(context.Context) ([]provider.ModelInfo, error) {
	return nil, nil
}

func newTestRouter(gen *stubGenerator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	p := pipeline.New(
		pipeline.Valves{GoogleAPIKey: "key"},
		pipeline.WithGeneratorFactory(func(context.Context, string) (provider.Generator, error) {
			return gen, nil
		}),
	)
	router := gin.New()
	RegisterRoutes(router, p)
	return router
}

func TestCompleteJSON(t *testing.T) {
	router := newTestRouter(&stubGenerator{text: "Hello!"})

	body := `{"model": "gemini-1.5-flash", "messages": [{"role": "user", "content": "Hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"Hello!"`)
}

func TestCompleteStream(t *testing.T) {
	router := newTestRouter(&stubGenerator{chunks: []string{"Hel", "lo"}})

	body := `{"model": "gemini-1.5-flash", "stream": true, "messages": [{"role": "user", "content": "Hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	out := w.Body.String()
	assert.Contains(t, out, "Hel")
	assert.Contains(t, out, "lo")
	assert.Contains(t, out, "event:done")
}

func TestCompleteBadPayload(t *testing.T) {
	router := newTestRouter(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader(`{"model": ""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompletePipelineErrorText(t *testing.T) {
	// Boundary failures are plain text in a 200 body, mirroring how the
	// pipeline reports them to programmatic hosts.
	router := newTestRouter(&stubGenerator{})

	body := `{"model": "text-bison-001", "messages": [{"role": "user", "content": "Hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat/completions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid model name format: text-bison-001")
}
