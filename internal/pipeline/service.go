package pipeline

import (
	"context"
	"log/slog"

	"github.com/pandaR2708/AI-News-analyzer/internal/model"
	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
)

type Analyzer interface {
	Analyze(ctx context.Context, company string) model.AnalysisResult
}

type ResultCache interface {
	Get(ctx context.Context, company string) (*model.AnalysisResult, error)
	Set(ctx context.Context, result *model.AnalysisResult) error
}

type ResultStore interface {
	SaveAnalysis(ctx context.Context, result *model.AnalysisResult) error
}

type EventPublisher interface {
	PublishAnalysis(ctx context.Context, result *model.AnalysisResult) error
}

// Service puts the optional cache, history store and event stream around an
// Analyzer. Their failures are logged and never change the result.
type Service struct {
	analyzer  Analyzer
	cache     ResultCache
	store     ResultStore
	publisher EventPublisher
}

type ServiceOption func(*Service)

func WithCache(cache ResultCache) ServiceOption {
	return func(s *Service) { s.cache = cache }
}

func WithStore(store ResultStore) ServiceOption {
	return func(s *Service) { s.store = store }
}

func WithPublisher(publisher EventPublisher) ServiceOption {
	return func(s *Service) { s.publisher = publisher }
}

func NewService(analyzer Analyzer, opts ...ServiceOption) *Service {
	s := &Service{analyzer: analyzer}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Analyze(ctx context.Context, company string) model.AnalysisResult {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, company)
		if err != nil {
			slog.Warn("error reading analysis cache", "company", company, "error", err)
		}
		if cached != nil {
			slog.Info("analysis cache hit", "company", company)
			return *cached
		}
	}

	return s.Refresh(ctx, company)
}

// Refresh runs the analyzer without consulting the cache and records the
// result.
func (s *Service) Refresh(ctx context.Context, company string) model.AnalysisResult {
	res := s.analyzer.Analyze(ctx, company)
	if !res.HasArticles() {
		return res
	}

	if s.cache != nil {
		if complete(res) {
			if err := s.cache.Set(ctx, &res); err != nil {
				slog.Warn("error writing analysis cache", "company", res.Company, "error", err)
			}
		} else {
			slog.Warn("skipping cache for degraded analysis", "company", res.Company, "analysis_id", res.ID, "has_audio", len(res.Audio) > 0)
		}
	}

	if s.store != nil {
		if err := s.store.SaveAnalysis(ctx, &res); err != nil {
			slog.Error("error saving analysis", "company", res.Company, "analysis_id", res.ID, "error", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAnalysis(ctx, &res); err != nil {
			slog.Error("error publishing analysis", "company", res.Company, "analysis_id", res.ID, "error", err)
		}
	}

	return res
}

// complete reports whether every article was summarized and narration
// succeeded. Degraded results are never cached so the next request retries.
func complete(res model.AnalysisResult) bool {
	if len(res.Audio) == 0 {
		return false
	}
	for _, a := range res.Articles {
		if a.Summary == nlp.SummaryFailed {
			return false
		}
	}
	return true
}
