package nlp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// SummaryFailed replaces the summary of any article the model could not
// summarize. It flows into the report and the narration unchanged.
const SummaryFailed = "Summary generation failed."

const (
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
)

const (
	DefaultInputTokens = 512
	DefaultMinTokens   = 50
	DefaultMaxTokens   = 150
)

// SummaryModel is a loaded summarization backend. Implementations must be
// safe for concurrent use.
type SummaryModel interface {
	GenerateSummary(ctx context.Context, text string, minTokens, maxTokens int) (string, error)
	Name() string
}

// Summarizer bounds the input and output of a SummaryModel and converts every
// failure to SummaryFailed.
type Summarizer struct {
	model       SummaryModel
	inputTokens int
	minTokens   int
	maxTokens   int
}

func NewSummarizer(model SummaryModel, minTokens, maxTokens int) *Summarizer {
	if minTokens <= 0 {
		minTokens = DefaultMinTokens
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if minTokens > maxTokens {
		minTokens = maxTokens
	}

	return &Summarizer{
		model:       model,
		inputTokens: DefaultInputTokens,
		minTokens:   minTokens,
		maxTokens:   maxTokens,
	}
}

func (s *Summarizer) Bounds() (int, int) {
	return s.minTokens, s.maxTokens
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (summary string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("summary model panicked", "model", s.model.Name(), "error", fmt.Sprint(r))
			summary = SummaryFailed
		}
	}()

	input := TruncateTokens(text, s.inputTokens)
	if strings.TrimSpace(input) == "" {
		slog.Warn("empty summary input")
		return SummaryFailed
	}

	out, err := s.model.GenerateSummary(ctx, input, s.minTokens, s.maxTokens)
	if err != nil {
		slog.Error("error generating summary", "model", s.model.Name(), "error", err)
		return SummaryFailed
	}

	out = TruncateTokens(strings.TrimSpace(out), s.maxTokens)
	if out == "" {
		slog.Warn("summary model returned empty text", "model", s.model.Name())
		return SummaryFailed
	}

	return out
}

// TruncateTokens keeps the first max whitespace-separated tokens of s.
func TruncateTokens(s string, max int) string {
	tokens := strings.Fields(s)
	if len(tokens) <= max {
		return strings.Join(tokens, " ")
	}
	return strings.Join(tokens[:max], " ")
}

func CountTokens(s string) int {
	return len(strings.Fields(s))
}
