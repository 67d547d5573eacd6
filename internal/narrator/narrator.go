package narrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pandaR2708/AI-News-analyzer/internal/model"
	"github.com/pandaR2708/AI-News-analyzer/pkg/speech"
)

const (
	SourceLanguage  = "en"
	DefaultLanguage = "hi"
)

type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
	Name() string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
	Name() string
}

// Narrator reads the processed articles aloud in the target language.
type Narrator struct {
	translator  Translator
	synthesizer Synthesizer
	language    string
}

func New(translator Translator, synthesizer Synthesizer, language string) *Narrator {
	if language == "" {
		language = DefaultLanguage
	}
	return &Narrator{
		translator:  translator,
		synthesizer: synthesizer,
		language:    language,
	}
}

// Script renders the English text that gets translated and spoken.
func Script(articles []model.ProcessedArticle) string {
	parts := make([]string, 0, len(articles))
	for _, a := range articles {
		parts = append(parts, fmt.Sprintf("%s: %s (Sentiment: %s).", a.Title, a.Summary, a.Sentiment))
	}
	return strings.Join(parts, " ")
}

// Narrate returns MP3 audio, or nil when there is nothing to say or any step
// fails.
func (n *Narrator) Narrate(ctx context.Context, articles []model.ProcessedArticle) (audio []byte) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("narration panicked", "error", fmt.Sprint(r))
			audio = nil
		}
	}()

	script := Script(articles)
	if strings.TrimSpace(script) == "" {
		return nil
	}

	translated, err := n.translator.Translate(ctx, script, SourceLanguage, n.language)
	if err != nil {
		slog.Error("error translating narration", "translator", n.translator.Name(), "language", n.language, "error", err)
		return nil
	}

	if strings.TrimSpace(translated) == "" {
		slog.Error("translator returned empty text", "translator", n.translator.Name(), "language", n.language)
		return nil
	}

	audio, err = n.synthesizer.Synthesize(ctx, translated, n.language)
	if err != nil {
		slog.Error("error generating speech", "synthesizer", n.synthesizer.Name(), "language", n.language, "error", err)
		return nil
	}

	if !speech.IsMP3(audio) {
		slog.Error("synthesizer returned non-mp3 audio", "synthesizer", n.synthesizer.Name(), "bytes", len(audio))
		return nil
	}

	return audio
}
