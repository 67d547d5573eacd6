package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: defaultGeminiModel}, nil
}

func (c *GeminiClient) Name() string {
	return c.modelName
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(translationPrompt(source, target)))

	resp, err := model.GenerateContent(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response from gemini")
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return "", fmt.Errorf("gemini translation truncated at the token limit")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	content := cleanCompletion(sb.String())
	if content == "" {
		return "", fmt.Errorf("empty response from gemini")
	}

	return content, nil
}
