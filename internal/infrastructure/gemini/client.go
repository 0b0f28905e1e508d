package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var errEmptyResponse = errors.New("gemini returned no content")

// GenerationRequest is a single text-completion call.
type GenerationRequest struct {
	Model           string
	Prompt          string
	Temperature     float32
	MaxOutputTokens int32
}

// GeminiClient generates text with the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Generate sends one prompt and returns the concatenated text parts of the
// first candidate.
func (c *GeminiClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	model := c.client.GenerativeModel(req.Model)
	model.SetTemperature(req.Temperature)
	model.SetMaxOutputTokens(req.MaxOutputTokens)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

// UnavailableGenerator stands in for a client that failed to initialise.
// Every call returns the initialisation error.
type UnavailableGenerator struct {
	Err error
}

func (g UnavailableGenerator) Generate(context.Context, GenerationRequest) (string, error) {
	return "", fmt.Errorf("gemini client unavailable: %w", g.Err)
}
