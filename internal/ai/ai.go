package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when the model produced no text parts.
var ErrEmptyResponse = errors.New("model returned no text")

// AIService holds the Gemini client and the model every task uses.
type AIService struct {
	Client    *genai.Client
	ModelName string
}

// NewAIService initializes the Gemini client.
func NewAIService(ctx context.Context, apiKey, modelName string) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	return &AIService{Client: client, ModelName: modelName}, nil
}

func (s *AIService) Close() error {
	return s.Client.Close()
}

// GenerateText sends a free-text prompt and returns the raw text answer.
func (s *AIService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, "", genai.Text(prompt))
}

// GenerateJSON asks the model for an application/json response. The
// returned string is the unparsed body; callers decode it.
func (s *AIService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, "application/json", genai.Text(prompt))
}

// GenerateWithImage sends an instruction together with an inline image.
// format is the MIME subtype, e.g. "jpeg" or "png".
func (s *AIService) GenerateWithImage(ctx context.Context, instruction, format string, data []byte) (string, error) {
	return s.generate(ctx, "", genai.Text(instruction), genai.ImageData(format, data))
}

func (s *AIService) generate(ctx context.Context, mimeType string, parts ...genai.Part) (string, error) {
	// A fresh model handle per call keeps the generation config local to
	// this request.
	model := s.Client.GenerativeModel(s.ModelName)
	if mimeType != "" {
		model.ResponseMIMEType = mimeType
	}

	res, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("error generating content: %w", err)
	}
	return ResponseText(res)
}

// ResponseText concatenates the text parts of the first candidate.
func ResponseText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

// ListContentModels returns the names of the models that support
// generateContent.
func (s *AIService) ListContentModels(ctx context.Context) ([]string, error) {
	var names []string
	it := s.Client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if SupportsGenerateContent(m) {
			names = append(names, m.Name)
		}
	}
	return names, nil
}

func SupportsGenerateContent(m *genai.ModelInfo) bool {
	for _, method := range m.SupportedGenerationMethods {
		if method == "generateContent" {
			return true
		}
	}
	return false
}
