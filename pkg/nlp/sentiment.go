package nlp

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/pandaR2708/AI-News-analyzer/internal/model"
)

// Scorer labels text with the sign of its VADER compound polarity.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *Scorer) Score(text string) (label model.Sentiment) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("error analyzing sentiment", "error", fmt.Sprint(r))
			label = model.SentimentNeutral
		}
	}()

	if strings.TrimSpace(text) == "" {
		return model.SentimentNeutral
	}

	return Label(s.analyzer.PolarityScores(text).Compound)
}

func Label(polarity float64) model.Sentiment {
	switch {
	case polarity > 0:
		return model.SentimentPositive
	case polarity < 0:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}
