package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pandaR2708/AI-News-analyzer/db"
	"github.com/pandaR2708/AI-News-analyzer/internal/config"
	"github.com/pandaR2708/AI-News-analyzer/internal/events"
	"github.com/pandaR2708/AI-News-analyzer/internal/handler"
	"github.com/pandaR2708/AI-News-analyzer/internal/narrator"
	"github.com/pandaR2708/AI-News-analyzer/internal/pipeline"
	"github.com/pandaR2708/AI-News-analyzer/internal/repository"
	"github.com/pandaR2708/AI-News-analyzer/pkg/llm"
	"github.com/pandaR2708/AI-News-analyzer/pkg/news"
	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
	"github.com/pandaR2708/AI-News-analyzer/pkg/speech"
	"github.com/pandaR2708/AI-News-analyzer/pkg/translate"
)

// App holds the pipeline and the optional infrastructure around it. Fields
// for infrastructure that is not configured stay nil.
type App struct {
	Orchestrator *pipeline.Orchestrator
	Service      *pipeline.Service
	Repository   *repository.AnalysisRepository
	Cache        *repository.AnalysisCache
	Queue        *repository.AnalyzeQueue
	Publisher    *events.Publisher

	closers []func() error
}

func NewSummaryModel(cfg config.Config) (nlp.SummaryModel, error) {
	switch cfg.SummarizerBackend {
	case nlp.BackendHuggingFace, "":
		return nlp.NewHuggingFaceModel(cfg.HFToken, cfg.HFModel), nil
	case nlp.BackendOpenAI:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown summarizer backend %q", cfg.SummarizerBackend)
	}
}

// NewTranslator returns the configured translator and a close func for
// backends that hold a connection.
func NewTranslator(ctx context.Context, cfg config.Config) (narrator.Translator, func() error, error) {
	noop := func() error { return nil }

	switch cfg.TranslatorBackend {
	case translate.Backend, "":
		return translate.NewGoogleClient(), noop, nil
	case llm.BackendOpenAI:
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey), noop, nil
	case llm.BackendAnthropic:
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey), noop, nil
	case llm.BackendGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown translator backend %q", cfg.TranslatorBackend)
	}
}

func NewSynthesizer(cfg config.Config) (narrator.Synthesizer, error) {
	switch cfg.SpeechBackend {
	case speech.BackendGTTS, "":
		return speech.NewGTTSClient(), nil
	case speech.BackendOpenAI:
		return speech.NewOpenAIClient(cfg.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown speech backend %q", cfg.SpeechBackend)
	}
}

// NewPipeline builds the orchestrator only, without any infrastructure.
func NewPipeline(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{}

	source, err := news.NewClient(cfg.NewsProvider, cfg.NewsAPIKeyFor())
	if err != nil {
		return nil, err
	}

	model, err := NewSummaryModel(cfg)
	if err != nil {
		return nil, err
	}

	translator, closeTranslator, err := NewTranslator(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closeTranslator)

	synthesizer, err := NewSynthesizer(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Orchestrator = pipeline.NewOrchestrator(
		source,
		nlp.NewSummarizer(model, cfg.SummaryMinTokens, cfg.SummaryMaxTokens),
		nlp.NewScorer(),
		narrator.New(translator, synthesizer, cfg.NarrationLanguage),
		cfg.SummaryConcurrency,
	)

	slog.Info("pipeline ready",
		"source", source.Name(),
		"summarizer", model.Name(),
		"translator", translator.Name(),
		"synthesizer", synthesizer.Name(),
		"language", cfg.NarrationLanguage,
	)

	return a, nil
}

// New builds the pipeline plus every configured piece of infrastructure.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a, err := NewPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var opts []pipeline.ServiceOption

	if cfg.DatabaseURL != "" {
		conn, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		a.Repository = repository.NewAnalysisRepository(conn)
		opts = append(opts, pipeline.WithStore(a.Repository))
	} else {
		slog.Warn("DATABASE_URL not set, analysis history disabled")
	}

	if cfg.RedisURL != "" {
		client, err := db.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		a.Cache = repository.NewAnalysisCache(client, cfg.CacheTTL)
		a.Queue = repository.NewAnalyzeQueue(client)
		opts = append(opts, pipeline.WithCache(a.Cache))
	} else {
		slog.Warn("REDIS_URL not set, result cache disabled")
	}

	if len(cfg.KafkaBrokers) > 0 {
		a.Publisher = events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		a.closers = append(a.closers, a.Publisher.Close)
		opts = append(opts, pipeline.WithPublisher(a.Publisher))
	}

	a.Service = pipeline.NewService(a.Orchestrator, opts...)
	return a, nil
}

func connectDB(ctx context.Context, url string) (*sql.DB, error) {
	conn, err := db.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to DB: %w", err)
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// HealthChecks lists the configured dependencies for the health endpoint.
func (a *App) HealthChecks() map[string]handler.Pinger {
	checks := make(map[string]handler.Pinger)
	if a.Repository != nil {
		checks["database"] = a.Repository
	}
	if a.Cache != nil {
		checks["redis"] = a.Cache
	}
	return checks
}

// History returns nil when no database is configured.
func (a *App) History() handler.AnalysisHistory {
	if a.Repository == nil {
		return nil
	}
	return a.Repository
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("error closing resource", "error", err)
		}
	}
	a.closers = nil
}
