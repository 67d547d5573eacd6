package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIClient{
		client:    &client,
		model:     openai.ChatModelGPT4oMini,
		modelName: "gpt-4o-mini",
	}
}

func (c *OpenAIClient) Name() string {
	return c.modelName
}

func (c *OpenAIClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	content, finish, err := c.complete(ctx, translationPrompt(source, target), text)
	if err != nil {
		return "", err
	}
	if finish == "length" {
		return "", fmt.Errorf("openai translation truncated at the token limit")
	}
	return content, nil
}

// GenerateSummary makes the chat model usable as a summary backend.
func (c *OpenAIClient) GenerateSummary(ctx context.Context, text string, minTokens, maxTokens int) (string, error) {
	content, _, err := c.complete(ctx, fmt.Sprintf(summaryPromptFormat, minTokens, maxTokens), text)
	return content, err
}

// complete returns the cleaned message content and the choice's finish reason.
func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})

	if err != nil {
		return "", "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("no response from openai")
	}

	content := cleanCompletion(resp.Choices[0].Message.Content)
	if content == "" {
		return "", "", fmt.Errorf("empty response from openai")
	}

	return content, string(resp.Choices[0].FinishReason), nil
}
