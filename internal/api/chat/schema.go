package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
)

// Request is the host's chat-completion payload. Message content is either a
// plain string or a list of typed parts, so it is decoded lazily.
type Request struct {
	Model          string           `json:"model" binding:"required"`
	Messages       []Message        `json:"messages" binding:"required"`
	Stream         bool             `json:"stream"`
	Temperature    *float64         `json:"temperature,omitempty"`
	TopP           *float64         `json:"top_p,omitempty"`
	TopK           *int             `json:"top_k,omitempty"`
	MaxTokens      *int             `json:"max_tokens,omitempty"`
	Stop           []string         `json:"stop,omitempty"`
	SafetySettings []map[string]any `json:"safety_settings,omitempty"`
}

// Message is one transcript entry with role and raw content.
type Message struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

// ContentPart is one tagged element of a multi-part message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

// Response is the non-streaming completion result.
type Response struct {
	Model     string    `json:"model"`
	Content   string    `json:"content"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ToSchema converts the wire message into the transcript form the pipeline
// consumes.
func (m Message) ToSchema() (*schema.Message, error) {
	msg := &schema.Message{Role: schema.RoleType(m.Role)}
	if len(m.Content) == 0 {
		return msg, nil
	}

	var text string
	if err := json.Unmarshal(m.Content, &text); err == nil {
		msg.Content = text
		return msg, nil
	}

	var parts []ContentPart
	if err := json.Unmarshal(m.Content, &parts); err != nil {
		return nil, fmt.Errorf("message content must be a string or a list of parts")
	}
	for _, p := range parts {
		part := schema.ChatMessagePart{
			Type: schema.ChatMessagePartType(p.Type),
			Text: p.Text,
		}
		if p.ImageURL != nil {
			part.ImageURL = &schema.ChatMessageImageURL{URL: p.ImageURL.URL}
		}
		msg.MultiContent = append(msg.MultiContent, part)
	}
	return msg, nil
}

// SchemaMessages converts the whole transcript.
func (r *Request) SchemaMessages() ([]*schema.Message, error) {
	messages := make([]*schema.Message, 0, len(r.Messages))
	for i, m := range r.Messages {
		msg, err := m.ToSchema()
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// UserMessage returns the text of the most recent user turn, which the host
// passes alongside the transcript.
func (r *Request) UserMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role != "user" {
			continue
		}
		msg, err := r.Messages[i].ToSchema()
		if err != nil {
			return ""
		}
		if msg.Content != "" {
			return msg.Content
		}
		for _, part := range msg.MultiContent {
			if part.Type == schema.ChatMessagePartTypeText {
				return part.Text
			}
		}
	}
	return ""
}

// Body flattens the typed request back into the loose options mapping the
// pipeline's option parser consumes, so HTTP callers and programmatic hosts
// share one code path.
func (r *Request) Body() map[string]any {
	body := map[string]any{"stream": r.Stream}
	if r.Temperature != nil {
		body["temperature"] = *r.Temperature
	}
	if r.TopP != nil {
		body["top_p"] = *r.TopP
	}
	if r.TopK != nil {
		body["top_k"] = *r.TopK
	}
	if r.MaxTokens != nil {
		body["max_tokens"] = *r.MaxTokens
	}
	if len(r.Stop) > 0 {
		body["stop"] = r.Stop
	}
	if len(r.SafetySettings) > 0 {
		settings := make([]any, 0, len(r.SafetySettings))
		for _, s := range r.SafetySettings {
			settings = append(settings, s)
		}
		body["safety_settings"] = settings
	}
	return body
}
