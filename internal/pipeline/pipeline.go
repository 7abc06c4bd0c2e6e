// Package pipeline adapts host chat requests to the Google GenAI service: it
// translates the host transcript into provider content, forwards the call
// through the provider SDK, and hands back either the complete text or a
// pull-based stream of chunks. It also maintains the catalog of selectable
// model descriptors.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/manifold-labs/genai-pipeline/internal/provider"
	"github.com/manifold-labs/genai-pipeline/internal/utils"
)

// errNoAPIKey is the exact text the host shows when no key is configured.
const errNoAPIKey = "Error: GOOGLE_API_KEY is not set"

// catalogErrorID marks the sentinel descriptor substituted when the provider
// listing fails.
const catalogErrorID = "error"

// Valves are the host-adjustable settings. They are replaced wholesale on
// update so readers never observe a half-written key.
type Valves struct {
	GoogleAPIKey string
}

// Model is one selectable entry in the catalog.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Result carries the outcome of a Pipe call: either the complete response
// text or a stream of chunks, never both. Boundary failures are reported as
// human-readable text, not as Go errors.
type Result struct {
	Text   string
	Stream *schema.StreamReader[string]
}

// Pipeline is the adapter instance. Valves and catalog are process-wide state
// guarded by a mutex; everything else is per-call.
type Pipeline struct {
	Type string
	ID   string
	Name string

	mu      sync.RWMutex
	valves  Valves
	catalog []Model

	newGenerator provider.Factory
}

// Option customizes a Pipeline at construction.
type Option func(*Pipeline)

// WithGeneratorFactory swaps the provider client factory, used by tests to
// substitute deterministic stubs.
func WithGeneratorFactory(f provider.Factory) Option {
	return func(p *Pipeline) {
		p.newGenerator = f
	}
}

// New creates the pipeline with the given valves. The catalog starts empty;
// call UpdateCatalog (or OnStartup) to populate it.
func New(valves Valves, opts ...Option) *Pipeline {
	p := &Pipeline{
		Type:         "manifold",
		ID:           "google_genai",
		Name:         "Google: ",
		valves:       valves,
		newGenerator: provider.NewGenaiClient,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Valves returns a snapshot of the current valves.
func (p *Pipeline) Valves() Valves {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.valves
}

// SetValves replaces the valves atomically.
func (p *Pipeline) SetValves(valves Valves) {
	p.mu.Lock()
	p.valves = valves
	p.mu.Unlock()
}

// Models returns the current catalog in refresh order.
func (p *Pipeline) Models() []Model {
	p.mu.RLock()
	defer p.mu.RUnlock()
	models := make([]Model, len(p.catalog))
	copy(models, p.catalog)
	return models
}

func (p *Pipeline) setCatalog(models []Model) {
	p.mu.Lock()
	p.catalog = models
	p.mu.Unlock()
}

// OnStartup is called when the host starts serving this pipeline.
func (p *Pipeline) OnStartup(ctx context.Context) {
	utils.Zlog.Info("Pipeline starting", zap.String("pipeline", p.ID))
	p.UpdateCatalog(ctx)
}

// OnShutdown is called when the host stops serving this pipeline.
func (p *Pipeline) OnShutdown(ctx context.Context) {
	utils.Zlog.Info("Pipeline shutting down", zap.String("pipeline", p.ID))
}

// OnValvesUpdated replaces the valves and refreshes the catalog with the new
// credentials.
func (p *Pipeline) OnValvesUpdated(ctx context.Context, valves Valves) {
	utils.Zlog.Info("Pipeline valves updated", zap.String("pipeline", p.ID))
	p.SetValves(valves)
	p.UpdateCatalog(ctx)
}

// UpdateCatalog replaces the catalog from the provider's live model listing,
// keeping only models that support content generation. An empty key empties
// the catalog; a provider failure substitutes a single sentinel descriptor so
// the host still has something to display.
func (p *Pipeline) UpdateCatalog(ctx context.Context) {
	apiKey := p.Valves().GoogleAPIKey
	if apiKey == "" {
		p.setCatalog([]Model{})
		return
	}

	models, err := p.listModels(ctx, apiKey)
	if err != nil {
		utils.Zlog.Error("Failed to fetch models from Google", zap.Error(err))
		p.setCatalog([]Model{{
			ID:   catalogErrorID,
			Name: "Could not fetch models from Google, please update the API Key",
		}})
		return
	}

	catalog := make([]Model, 0, len(models))
	for _, m := range models {
		if !m.SupportsGeneration() {
			continue
		}
		catalog = append(catalog, Model{
			ID:   strings.TrimPrefix(m.Name, modelsSegment),
			Name: m.DisplayName,
		})
	}

	utils.Zlog.Info("Catalog refreshed", zap.Int("models", len(catalog)))
	p.setCatalog(catalog)
}

func (p *Pipeline) listModels(ctx context.Context, apiKey string) ([]provider.ModelInfo, error) {
	gen, err := p.newGenerator(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return gen.ListModels(ctx)
}

// Pipe translates the host request and dispatches it to the provider.
//
// userMessage is accepted for interface parity with the host but the full
// transcript in messages is what gets sent, so multi-turn context and image
// input survive the translation.
func (p *Pipeline) Pipe(ctx context.Context, userMessage string, modelID string, messages []*schema.Message, body map[string]any) Result {
	apiKey := p.Valves().GoogleAPIKey
	if apiKey == "" {
		return Result{Text: errNoAPIKey}
	}

	modelName := NormalizeModelID(modelID)
	if !strings.HasPrefix(modelName, geminiPrefix) {
		return Result{Text: fmt.Sprintf("Error: Invalid model name format: %s", modelName)}
	}

	opts := ParseOptions(body)

	utils.Zlog.Info("Pipe called",
		zap.String("model", modelName),
		zap.Bool("stream", opts.Stream),
		zap.Int("messages", len(messages)))

	contents, err := BuildContents(messages)
	if err != nil {
		return errorResult(err)
	}

	gen, err := p.newGenerator(ctx, apiKey)
	if err != nil {
		return errorResult(err)
	}

	cfg := opts.GenerationConfig()

	if opts.Stream {
		return Result{Stream: gen.GenerateStream(ctx, modelName, contents, cfg)}
	}

	text, err := gen.GenerateContent(ctx, modelName, contents, cfg)
	if err != nil {
		return errorResult(err)
	}
	return Result{Text: text}
}

// errorResult converts a failure into the plain-text form the host expects;
// errors never cross the pipe boundary as Go errors.
func errorResult(err error) Result {
	utils.Zlog.Error("Error generating content", zap.Error(err))
	return Result{Text: fmt.Sprintf("An error occurred: %v", err)}
}
