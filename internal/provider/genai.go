// Package provider wraps the Google GenAI SDK behind a small interface so the
// pipeline can be exercised against deterministic stubs.
package provider

import (
	"context"
	"fmt"
	"slices"

	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// generateContentAction marks models that can serve generateContent calls.
const generateContentAction = "generateContent"

// ModelInfo is one entry from the provider's model listing.
type ModelInfo struct {
	Name             string
	DisplayName      string
	SupportedActions []string
}

// SupportsGeneration reports whether the model can generate content.
func (m ModelInfo) SupportsGeneration() bool {
	return slices.Contains(m.SupportedActions, generateContentAction)
}

// Generator abstracts the Google GenAI calls the pipeline makes.
type Generator interface {
	// GenerateContent performs a blocking generation call and returns the
	// complete response text.
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error)

	// GenerateStream starts a streaming generation call. The returned reader
	// yields non-empty text chunks in arrival order; closing it releases the
	// underlying connection.
	GenerateStream(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) *schema.StreamReader[string]

	// ListModels returns the provider's model catalog.
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// Factory builds a Generator for an API key. The pipeline re-invokes it
// whenever the key may have changed, matching the provider SDK's
// client-per-credentials model.
type Factory func(ctx context.Context, apiKey string) (Generator, error)

type genaiClient struct {
	client *genai.Client
}

// NewGenaiClient creates a Generator backed by the Gemini API.
func NewGenaiClient(ctx context.Context, apiKey string) (Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &genaiClient{client: client}, nil
}

func (g *genaiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (g *genaiClient) GenerateStream(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) *schema.StreamReader[string] {
	sr, sw := schema.Pipe[string](8)

	go func() {
		defer sw.Close()
		for resp, err := range g.client.Models.GenerateContentStream(ctx, model, contents, cfg) {
			if err != nil {
				sw.Send("", err)
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			if closed := sw.Send(text, nil); closed {
				// Reader was dropped; stop pulling from the provider.
				return
			}
		}
	}()

	return sr
}

func (g *genaiClient) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	for model, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		models = append(models, ModelInfo{
			Name:             model.Name,
			DisplayName:      model.DisplayName,
			SupportedActions: model.SupportedActions,
		})
	}
	return models, nil
}
