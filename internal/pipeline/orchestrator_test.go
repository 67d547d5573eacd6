package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/pandaR2708/AI-News-analyzer/internal/model"
	"github.com/pandaR2708/AI-News-analyzer/pkg/news"
	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
)

var mp3Frame = []byte{0xFF, 0xFB, 0x90, 0x64}

type fakeSource struct {
	articles []news.Article
	err      error
	calls    int32
}

func (f *fakeSource) Fetch(ctx context.Context, company string) ([]news.Article, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.articles, f.err
}

func (f *fakeSource) Name() string { return "fake" }

// fakeSummarizer echoes its input, failing for texts that contain "FAIL".
// delay staggers completion so later articles can finish first.
type fakeSummarizer struct {
	delay func(text string) time.Duration
	calls int32
}

func (f *fakeSummarizer) Summarize(ctx context.Context, text string) string {
	atomic.AddInt32(&f.calls, 1)
	if f.delay != nil {
		time.Sleep(f.delay(text))
	}
	if strings.Contains(text, "FAIL") {
		return nlp.SummaryFailed
	}
	return "summary of " + text
}

type fakeScorer struct {
	mu     sync.Mutex
	scored []string
}

func (f *fakeScorer) Score(text string) model.Sentiment {
	f.mu.Lock()
	f.scored = append(f.scored, text)
	f.mu.Unlock()

	switch {
	case strings.Contains(text, "rise"):
		return model.SentimentPositive
	case strings.Contains(text, "lawsuit"):
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

type fakeNarrator struct {
	audio []byte
	got   []model.ProcessedArticle
	calls int
}

func (f *fakeNarrator) Narrate(ctx context.Context, articles []model.ProcessedArticle) []byte {
	f.calls++
	f.got = articles
	return f.audio
}

func TestAnalyzeScenario(t *testing.T) {
	source := &fakeSource{articles: []news.Article{
		{Title: "Acme profits", Description: "Acme profits rise 20%."},
		{Title: "Acme court", Description: "Acme faces lawsuit."},
	}}
	narrator := &fakeNarrator{audio: mp3Frame}
	o := NewOrchestrator(source, &fakeSummarizer{}, &fakeScorer{}, narrator, 2)

	res := o.Analyze(context.Background(), "  Acme ")

	assert.Equal(t, "Acme", res.Company)
	assert.Equal(t, "", res.Message)
	assert.Equal(t, 2, len(res.Articles))
	assert.Equal(t, "Acme profits", res.Articles[0].Title)
	assert.Equal(t, "summary of Acme profits rise 20%.", res.Articles[0].Summary)
	assert.Equal(t, model.SentimentPositive, res.Articles[0].Sentiment)
	assert.Equal(t, model.SentimentNegative, res.Articles[1].Sentiment)
	assert.Equal(t, mp3Frame, res.Audio)
	assert.Equal(t, res.Articles, narrator.got)
	assert.NotEqual(t, "", res.ID)
}

func TestAnalyzeEmptyCompanyMakesNoCalls(t *testing.T) {
	for _, company := range []string{"", "   ", "\t\n"} {
		source := &fakeSource{}
		summarizer := &fakeSummarizer{}
		narrator := &fakeNarrator{}
		o := NewOrchestrator(source, summarizer, &fakeScorer{}, narrator, 0)

		res := o.Analyze(context.Background(), company)

		assert.Equal(t, model.MessageInvalidCompany, res.Message)
		assert.Equal(t, 0, len(res.Articles))
		assert.Equal(t, int32(0), source.calls)
		assert.Equal(t, int32(0), summarizer.calls)
		assert.Equal(t, 0, narrator.calls)
	}
}

func TestAnalyzeNoNews(t *testing.T) {
	tests := []struct {
		name   string
		source *fakeSource
	}{
		{name: "no matches", source: &fakeSource{}},
		{name: "source unreachable", source: &fakeSource{err: errors.New("connection refused")}},
		{name: "partial data with error", source: &fakeSource{articles: []news.Article{{Title: "x"}}, err: errors.New("decode")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summarizer := &fakeSummarizer{}
			narrator := &fakeNarrator{}
			o := NewOrchestrator(tt.source, summarizer, &fakeScorer{}, narrator, 0)

			res := o.Analyze(context.Background(), "Acme")

			assert.Equal(t, model.MessageNoNews, res.Message)
			assert.Equal(t, 0, len(res.Articles))
			assert.Equal(t, int32(0), summarizer.calls)
			assert.Equal(t, 0, narrator.calls)
			assert.Equal(t, int32(1), tt.source.calls)
		})
	}
}

func TestAnalyzeKeepsOrderUnderConcurrency(t *testing.T) {
	var articles []news.Article
	for i := 0; i < 10; i++ {
		articles = append(articles, news.Article{Title: fmt.Sprintf("t%d", i), Description: fmt.Sprintf("d%d", i)})
	}

	// earlier articles take longer, so completion order is reversed
	summarizer := &fakeSummarizer{delay: func(text string) time.Duration {
		var i int
		fmt.Sscanf(text, "d%d", &i)
		return time.Duration(10-i) * 5 * time.Millisecond
	}}
	o := NewOrchestrator(&fakeSource{articles: articles}, summarizer, &fakeScorer{}, &fakeNarrator{}, 10)

	res := o.Analyze(context.Background(), "Acme")

	assert.Equal(t, 10, len(res.Articles))
	for i, a := range res.Articles {
		assert.Equal(t, fmt.Sprintf("t%d", i), a.Title)
		assert.Equal(t, fmt.Sprintf("summary of d%d", i), a.Summary)
	}
}

func TestAnalyzeSummaryFailureKeepsPlaceholder(t *testing.T) {
	source := &fakeSource{articles: []news.Article{
		{Title: "ok", Description: "Acme profits rise."},
		{Title: "broken", Description: "FAIL lawsuit"},
		{Title: "ok too", Description: "Acme faces lawsuit."},
	}}
	scorer := &fakeScorer{}
	narrator := &fakeNarrator{audio: mp3Frame}
	o := NewOrchestrator(source, &fakeSummarizer{}, scorer, narrator, 0)

	res := o.Analyze(context.Background(), "Acme")

	assert.Equal(t, 3, len(res.Articles))
	assert.Equal(t, "broken", res.Articles[1].Title)
	assert.Equal(t, nlp.SummaryFailed, res.Articles[1].Summary)
	assert.Equal(t, model.SentimentNeutral, res.Articles[1].Sentiment)
	assert.Equal(t, model.SentimentNegative, res.Articles[2].Sentiment)
	assert.Equal(t, 2, len(scorer.scored))
	assert.Equal(t, 3, len(narrator.got))
}

func TestAnalyzeScoresSummaryNotDescription(t *testing.T) {
	scorer := &fakeScorer{}
	o := NewOrchestrator(&fakeSource{articles: []news.Article{{Title: "t", Description: "raw"}}}, &fakeSummarizer{}, scorer, &fakeNarrator{}, 0)

	o.Analyze(context.Background(), "Acme")

	assert.Equal(t, []string{"summary of raw"}, scorer.scored)
}

func TestAnalyzeNarrationFailureKeepsArticles(t *testing.T) {
	source := &fakeSource{articles: []news.Article{{Title: "t", Description: "d"}}}
	o := NewOrchestrator(source, &fakeSummarizer{}, &fakeScorer{}, &fakeNarrator{audio: nil}, 0)

	res := o.Analyze(context.Background(), "Acme")

	assert.Equal(t, 1, len(res.Articles))
	assert.Equal(t, 0, len(res.Audio))
	assert.Equal(t, true, res.HasArticles())
}

func TestAnalyzeFillsPlaceholders(t *testing.T) {
	source := &fakeSource{articles: []news.Article{{}}}
	o := NewOrchestrator(source, &fakeSummarizer{}, &fakeScorer{}, &fakeNarrator{}, 0)

	res := o.Analyze(context.Background(), "Acme")

	assert.Equal(t, model.NoTitle, res.Articles[0].Title)
	assert.Equal(t, "summary of "+model.NoSummary, res.Articles[0].Summary)
}
