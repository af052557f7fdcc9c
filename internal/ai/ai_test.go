package ai

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseText(t *testing.T) {
	t.Run("joins text parts of first candidate", func(t *testing.T) {
		res := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
			},
		}
		text, err := ResponseText(res)
		require.NoError(t, err)
		assert.Equal(t, "Hello, world", text)
	})

	t.Run("skips non-text parts", func(t *testing.T) {
		res := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.ImageData("png", []byte{1}), genai.Text("ok")}}},
			},
		}
		text, err := ResponseText(res)
		require.NoError(t, err)
		assert.Equal(t, "ok", text)
	})

	t.Run("empty responses", func(t *testing.T) {
		for _, res := range []*genai.GenerateContentResponse{
			nil,
			{},
			{Candidates: []*genai.Candidate{{}}},
			{Candidates: []*genai.Candidate{{Content: &genai.Content{}}}},
		} {
			_, err := ResponseText(res)
			assert.ErrorIs(t, err, ErrEmptyResponse)
		}
	})
}

func TestSupportsGenerateContent(t *testing.T) {
	assert.True(t, SupportsGenerateContent(&genai.ModelInfo{
		Name:                       "models/gemini-2.0-flash",
		SupportedGenerationMethods: []string{"countTokens", "generateContent"},
	}))
	assert.False(t, SupportsGenerateContent(&genai.ModelInfo{
		Name:                       "models/embedding-001",
		SupportedGenerationMethods: []string{"embedContent"},
	}))
}
