package pipeline

import (
	"encoding/base64"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeModelID(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare id", "gemini-1.5-flash", "gemini-1.5-flash"},
		{"manifold prefix", "google_genai.gemini-1.5-flash", "gemini-1.5-flash"},
		{"leading dots", "google_genai..gemini-1.5-pro", "gemini-1.5-pro"},
		{"models segment", "models/gemini-1.5-pro", "gemini-1.5-pro"},
		{"prefix and segment", "google_genai.models/gemini-2.0-flash", "gemini-2.0-flash"},
		{"non gemini id", "text-bison-001", "text-bison-001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeModelID(tc.input))
		})
	}
}

func TestBuildContentsSystemTurn(t *testing.T) {
	messages := []*schema.Message{
		{Role: schema.System, Content: "Be terse"},
		{Role: schema.User, Content: "Hi"},
	}

	contents, err := BuildContents(messages)
	require.NoError(t, err)
	require.Len(t, contents, 2)

	assert.Equal(t, "user", string(contents[0].Role))
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "System: Be terse", contents[0].Parts[0].Text)

	assert.Equal(t, "user", string(contents[1].Role))
	assert.Equal(t, "Hi", contents[1].Parts[0].Text)
}

func TestBuildContentsRoleMapping(t *testing.T) {
	messages := []*schema.Message{
		{Role: schema.User, Content: "question"},
		{Role: schema.Assistant, Content: "answer"},
		{Role: schema.User, Content: "follow-up"},
	}

	contents, err := BuildContents(messages)
	require.NoError(t, err)
	require.Len(t, contents, 3)

	assert.Equal(t, "user", string(contents[0].Role))
	assert.Equal(t, "model", string(contents[1].Role))
	assert.Equal(t, "user", string(contents[2].Role))
	assert.Equal(t, "answer", contents[1].Parts[0].Text)
}

func TestBuildContentsInlineImage(t *testing.T) {
	messages := []*schema.Message{
		{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{Type: schema.ChatMessagePartTypeText, Text: "What is this?"},
				{
					Type:     schema.ChatMessagePartTypeImageURL,
					ImageURL: &schema.ChatMessageImageURL{URL: "data:image/jpeg;base64,AAAA"},
				},
			},
		},
	}

	contents, err := BuildContents(messages)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 2)

	assert.Equal(t, "What is this?", contents[0].Parts[0].Text)

	inline := contents[0].Parts[1].InlineData
	require.NotNil(t, inline)
	assert.Equal(t, "image/jpeg", inline.MIMEType)
	assert.Equal(t, "AAAA", base64.StdEncoding.EncodeToString(inline.Data))
}

func TestBuildContentsExternalImageURL(t *testing.T) {
	messages := []*schema.Message{
		{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{
					Type:     schema.ChatMessagePartTypeImageURL,
					ImageURL: &schema.ChatMessageImageURL{URL: "https://example.com/cat.png"},
				},
			},
		},
	}

	contents, err := BuildContents(messages)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 1)

	fileData := contents[0].Parts[0].FileData
	require.NotNil(t, fileData)
	assert.Equal(t, "https://example.com/cat.png", fileData.FileURI)
}

func TestBuildContentsInvalidBase64(t *testing.T) {
	messages := []*schema.Message{
		{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{
					Type:     schema.ChatMessagePartTypeImageURL,
					ImageURL: &schema.ChatMessageImageURL{URL: "data:image/jpeg;base64,not-base64!"},
				},
			},
		},
	}

	_, err := BuildContents(messages)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base64")
}

func TestBuildContentsDropsUnknownParts(t *testing.T) {
	messages := []*schema.Message{
		{
			Role: schema.User,
			MultiContent: []schema.ChatMessagePart{
				{Type: schema.ChatMessagePartType("audio_url")},
				{Type: schema.ChatMessagePartTypeText, Text: "hello"},
			},
		},
	}

	contents, err := BuildContents(messages)
	require.NoError(t, err)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "hello", contents[0].Parts[0].Text)
}

func TestBuildContentsEmptySystemMessage(t *testing.T) {
	messages := []*schema.Message{
		{Role: schema.System, Content: ""},
		{Role: schema.User, Content: "Hi"},
	}

	contents, err := BuildContents(messages)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "Hi", contents[0].Parts[0].Text)
}
