package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pandaR2708/AI-News-analyzer/internal/model"
	"github.com/pandaR2708/AI-News-analyzer/pkg/news"
	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 4

type NewsSource interface {
	Fetch(ctx context.Context, company string) ([]news.Article, error)
	Name() string
}

type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

type SentimentScorer interface {
	Score(text string) model.Sentiment
}

type Narrator interface {
	Narrate(ctx context.Context, articles []model.ProcessedArticle) []byte
}

// Orchestrator runs one company through news retrieval, per-article
// summarization and sentiment, and narration.
type Orchestrator struct {
	source      NewsSource
	summarizer  Summarizer
	scorer      SentimentScorer
	narrator    Narrator
	concurrency int
	now         func() time.Time
}

func NewOrchestrator(source NewsSource, summarizer Summarizer, scorer SentimentScorer, narrator Narrator, concurrency int) *Orchestrator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		source:      source,
		summarizer:  summarizer,
		scorer:      scorer,
		narrator:    narrator,
		concurrency: concurrency,
		now:         time.Now,
	}
}

func (o *Orchestrator) Analyze(ctx context.Context, company string) model.AnalysisResult {
	company = strings.TrimSpace(company)

	res := model.AnalysisResult{
		ID:        uuid.NewString(),
		Company:   company,
		CreatedAt: o.now().UTC(),
	}

	if company == "" {
		res.Message = model.MessageInvalidCompany
		return res
	}

	fetched, err := o.source.Fetch(ctx, company)
	if err != nil {
		// unreachable source and no matches both read as "no news"
		slog.Error("error fetching news", "source", o.source.Name(), "company", company, "error", err)
		fetched = nil
	}

	articles := news.ToModel(fetched)
	if len(articles) == 0 {
		slog.Info("no news found", "source", o.source.Name(), "company", company)
		res.Message = model.MessageNoNews
		return res
	}

	res.Articles = o.process(ctx, articles)
	res.Audio = o.narrator.Narrate(ctx, res.Articles)

	slog.Info("analysis complete", "company", company, "articles", len(res.Articles), "audio_bytes", len(res.Audio))
	return res
}

// process summarizes and scores every article concurrently. Each goroutine
// writes only its own slot, so the output stays index-aligned.
func (o *Orchestrator) process(ctx context.Context, articles []model.Article) []model.ProcessedArticle {
	processed := make([]model.ProcessedArticle, len(articles))

	var g errgroup.Group
	g.SetLimit(o.concurrency)

	for i, a := range articles {
		g.Go(func() error {
			summary := o.summarizer.Summarize(ctx, a.Description)

			sentiment := model.SentimentNeutral
			if summary != nlp.SummaryFailed {
				sentiment = o.scorer.Score(summary)
			}

			processed[i] = model.ProcessedArticle{
				Title:     a.Title,
				Summary:   summary,
				Sentiment: sentiment,
			}
			return nil
		})
	}

	g.Wait()
	return processed
}
