package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
)

const (
	anthropicMaxTokens = 4096
	// keeps each chunk's translation well inside anthropicMaxTokens, even for
	// scripts such as Devanagari that cost several tokens per word
	anthropicChunkChars = 3000
)

type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string, opts ...option.RequestOption) *AnthropicClient {
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.ModelClaudeHaiku4_5,
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) Name() string {
	return c.modelName
}

// Translate sends the text in chunks and fails if any chunk's output was cut
// at the token limit.
func (c *AnthropicClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	chunks := nlp.SplitText(text, anthropicChunkChars)
	if len(chunks) == 0 {
		return "", fmt.Errorf("anthropic: empty text")
	}

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := c.translateChunk(ctx, chunk, source, target)
		if err != nil {
			return "", fmt.Errorf("anthropic chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, out)
	}

	return strings.Join(parts, " "), nil
}

func (c *AnthropicClient) translateChunk(ctx context.Context, text, source, target string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: translationPrompt(source, target)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})

	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	if resp.StopReason == anthropic.StopReasonMaxTokens {
		return "", fmt.Errorf("anthropic translation truncated at %d tokens", anthropicMaxTokens)
	}

	if len(resp.Content) == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	content := cleanCompletion(resp.Content[0].Text)
	if content == "" {
		return "", fmt.Errorf("empty response from anthropic")
	}

	return content, nil
}
