package pipeline

import (
	"github.com/spf13/cast"
	"google.golang.org/genai"
)

// Defaults applied when the host body omits a generation parameter.
const (
	DefaultTemperature     float32 = 0.7
	DefaultTopP            float32 = 0.9
	DefaultTopK            float32 = 40
	DefaultMaxOutputTokens int32   = 8192
)

// Options holds the per-call generation settings parsed from the host's loose
// request body. Nothing here survives the call.
type Options struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
	StopSequences   []string
	Stream          bool
	SafetySettings  []*genai.SafetySetting
}

// ParseOptions reads generation settings from the host body, falling back to
// the documented defaults for anything absent.
func ParseOptions(body map[string]any) Options {
	opts := Options{
		Temperature:     DefaultTemperature,
		TopP:            DefaultTopP,
		TopK:            DefaultTopK,
		MaxOutputTokens: DefaultMaxOutputTokens,
	}

	if v, ok := body["temperature"]; ok {
		opts.Temperature = cast.ToFloat32(v)
	}
	if v, ok := body["top_p"]; ok {
		opts.TopP = cast.ToFloat32(v)
	}
	if v, ok := body["top_k"]; ok {
		opts.TopK = cast.ToFloat32(v)
	}
	if v, ok := body["max_tokens"]; ok {
		opts.MaxOutputTokens = cast.ToInt32(v)
	}
	if v, ok := body["stop"]; ok {
		opts.StopSequences = cast.ToStringSlice(v)
	}
	if v, ok := body["safety_settings"]; ok {
		opts.SafetySettings = parseSafetySettings(v)
	}
	opts.Stream = cast.ToBool(body["stream"])

	return opts
}

// parseSafetySettings coerces the host's safety-settings passthrough into the
// SDK's typed form. Entries without both a category and a threshold are
// skipped.
func parseSafetySettings(v any) []*genai.SafetySetting {
	entries := cast.ToSlice(v)
	settings := make([]*genai.SafetySetting, 0, len(entries))
	for _, entry := range entries {
		m := cast.ToStringMapString(entry)
		category := m["category"]
		threshold := m["threshold"]
		if category == "" || threshold == "" {
			continue
		}
		settings = append(settings, &genai.SafetySetting{
			Category:  genai.HarmCategory(category),
			Threshold: genai.HarmBlockThreshold(threshold),
		})
	}
	if len(settings) == 0 {
		return nil
	}
	return settings
}

// GenerationConfig converts the options to the SDK's generation config.
func (o Options) GenerationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(o.Temperature),
		TopP:            genai.Ptr(o.TopP),
		TopK:            genai.Ptr(o.TopK),
		MaxOutputTokens: o.MaxOutputTokens,
		StopSequences:   o.StopSequences,
		SafetySettings:  o.SafetySettings,
	}
}
