package pipeline

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

const (
	// manifoldPrefix is what the host prepends to model ids served by this
	// pipeline, e.g. "google_genai.gemini-1.5-flash".
	manifoldPrefix = "google_genai."

	// geminiPrefix is required on every normalized model id.
	geminiPrefix = "gemini-"

	modelsSegment = "models/"

	systemTurnPrefix = "System: "

	dataURIPrefix = "data:image"

	inlineImageMIMEType = "image/jpeg"

	// Provider-side conversation roles.
	roleUser  = "user"
	roleModel = "model"
)

// NormalizeModelID strips the host-side decorations from a model id: the
// manifold prefix, any leading dots left by it, and an embedded "models/"
// path segment from the provider's fully qualified names.
func NormalizeModelID(modelID string) string {
	id := strings.TrimPrefix(modelID, manifoldPrefix)
	id = strings.TrimLeft(id, ".")
	if idx := strings.Index(id, modelsSegment); idx >= 0 {
		id = id[idx+len(modelsSegment):]
	}
	return id
}

// BuildContents translates the host's chat transcript into provider content,
// preserving multi-turn history and image parts. The first system message, if
// any, becomes a synthetic leading user turn; system messages never appear in
// the transcript itself.
func BuildContents(messages []*schema.Message) ([]*genai.Content, error) {
	var systemMessage string
	for _, msg := range messages {
		if msg.Role == schema.System {
			systemMessage = msg.Content
			break
		}
	}

	contents := make([]*genai.Content, 0, len(messages)+1)
	if systemMessage != "" {
		contents = append(contents, &genai.Content{
			Role:  roleUser,
			Parts: []*genai.Part{{Text: systemTurnPrefix + systemMessage}},
		})
	}

	for _, msg := range messages {
		if msg.Role == schema.System {
			continue
		}
		content, err := translateMessage(msg)
		if err != nil {
			return nil, err
		}
		contents = append(contents, content)
	}

	return contents, nil
}

func translateMessage(msg *schema.Message) (*genai.Content, error) {
	role := roleUser
	if msg.Role == schema.Assistant {
		role = roleModel
	}

	if len(msg.MultiContent) == 0 {
		return &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		}, nil
	}

	parts := make([]*genai.Part, 0, len(msg.MultiContent))
	for _, part := range msg.MultiContent {
		translated, err := translatePart(part)
		if err != nil {
			return nil, err
		}
		if translated != nil {
			parts = append(parts, translated)
		}
	}

	return &genai.Content{Role: role, Parts: parts}, nil
}

// translatePart maps one tagged content part to its provider shape. Inline
// image data URIs carry the base64 payload after the comma; external image
// URLs become file references. Unknown part types are dropped, as the host
// may introduce new ones.
func translatePart(part schema.ChatMessagePart) (*genai.Part, error) {
	switch part.Type {
	case schema.ChatMessagePartTypeText:
		return &genai.Part{Text: part.Text}, nil

	case schema.ChatMessagePartTypeImageURL:
		if part.ImageURL == nil {
			return nil, fmt.Errorf("image part is missing its URL")
		}
		url := part.ImageURL.URL
		if !strings.HasPrefix(url, dataURIPrefix) {
			return &genai.Part{FileData: &genai.FileData{FileURI: url}}, nil
		}

		payload := url
		if idx := strings.Index(url, ","); idx >= 0 {
			payload = url[idx+1:]
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 image data: %w", err)
		}
		return &genai.Part{InlineData: &genai.Blob{
			MIMEType: inlineImageMIMEType,
			Data:     data,
		}}, nil

	default:
		return nil, nil
	}
}
