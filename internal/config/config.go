package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pandaR2708/AI-News-analyzer/internal/narrator"
	"github.com/pandaR2708/AI-News-analyzer/internal/pipeline"
	"github.com/pandaR2708/AI-News-analyzer/pkg/llm"
	"github.com/pandaR2708/AI-News-analyzer/pkg/news"
	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
	"github.com/pandaR2708/AI-News-analyzer/pkg/speech"
	"github.com/pandaR2708/AI-News-analyzer/pkg/translate"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort              = "8080"
	defaultCacheTTL          = 15 * time.Minute
	defaultKafkaTopic        = "analysis.completed"
	defaultWatchlistSchedule = "0 * * * *"
	defaultTimezone          = "UTC"
	defaultRateLimitRPS      = 1.0
	defaultRateLimitBurst    = 5
)

// Config holds runtime configuration for every binary.
type Config struct {
	Port        string `yaml:"port"`
	FrontendURL string `yaml:"frontend_url"`

	NewsProvider       string `yaml:"news_provider"`
	NewsAPIKey         string `yaml:"news_api_key"`
	FinnhubAPIKey      string `yaml:"finnhub_api_key"`
	AlphaVantageAPIKey string `yaml:"alphavantage_api_key"`
	MassiveAPIKey      string `yaml:"massive_api_key"`

	SummarizerBackend  string `yaml:"summarizer_backend"`
	HFToken            string `yaml:"hf_api_token"`
	HFModel            string `yaml:"hf_model"`
	SummaryMinTokens   int    `yaml:"summary_min_tokens"`
	SummaryMaxTokens   int    `yaml:"summary_max_tokens"`
	SummaryConcurrency int    `yaml:"summary_concurrency"`

	TranslatorBackend string `yaml:"translator_backend"`
	SpeechBackend     string `yaml:"speech_backend"`
	NarrationLanguage string `yaml:"narration_language"`

	OpenAIAPIKey    string `yaml:"openai_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`

	DatabaseURL string        `yaml:"database_url"`
	RedisURL    string        `yaml:"redis_url"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`

	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`

	Watchlist         []string `yaml:"watchlist"`
	WatchlistSchedule string   `yaml:"watchlist_schedule"`
	Timezone          string   `yaml:"timezone"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

func Default() Config {
	return Config{
		Port:               defaultPort,
		NewsProvider:       news.ProviderNewsAPI,
		SummarizerBackend:  nlp.BackendHuggingFace,
		HFModel:            nlp.DefaultHFModel,
		SummaryMinTokens:   nlp.DefaultMinTokens,
		SummaryMaxTokens:   nlp.DefaultMaxTokens,
		SummaryConcurrency: pipeline.DefaultConcurrency,
		TranslatorBackend:  translate.Backend,
		SpeechBackend:      speech.BackendGTTS,
		NarrationLanguage:  narrator.DefaultLanguage,
		CacheTTL:           defaultCacheTTL,
		KafkaTopic:         defaultKafkaTopic,
		WatchlistSchedule:  defaultWatchlistSchedule,
		Timezone:           defaultTimezone,
		RateLimitRPS:       defaultRateLimitRPS,
		RateLimitBurst:     defaultRateLimitBurst,
	}
}

// Load reads the optional YAML file named by APP_CONFIG, applies environment
// overrides and validates the result.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("APP_CONFIG"); path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.FrontendURL, "FRONTEND_URL")
	setString(&c.NewsProvider, "NEWS_PROVIDER")
	setString(&c.NewsAPIKey, "NEWS_API_KEY")
	setString(&c.FinnhubAPIKey, "FINNHUB_API_KEY")
	setString(&c.AlphaVantageAPIKey, "ALPHAVANTAGE_API_KEY")
	setString(&c.MassiveAPIKey, "MASSIVE_API_KEY")
	setString(&c.SummarizerBackend, "SUMMARIZER_BACKEND")
	setString(&c.HFToken, "HF_API_TOKEN")
	setString(&c.HFModel, "HF_MODEL")
	setString(&c.TranslatorBackend, "TRANSLATOR_BACKEND")
	setString(&c.SpeechBackend, "SPEECH_BACKEND")
	setString(&c.NarrationLanguage, "NARRATION_LANGUAGE")
	setString(&c.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	setString(&c.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.KafkaTopic, "KAFKA_TOPIC")
	setString(&c.WatchlistSchedule, "WATCHLIST_SCHEDULE")
	setString(&c.Timezone, "TIMEZONE")
	setList(&c.KafkaBrokers, "KAFKA_BROKERS")
	setList(&c.Watchlist, "WATCHLIST")

	if err := setInt(&c.SummaryMinTokens, "SUMMARY_MIN_TOKENS"); err != nil {
		return err
	}
	if err := setInt(&c.SummaryMaxTokens, "SUMMARY_MAX_TOKENS"); err != nil {
		return err
	}
	if err := setInt(&c.SummaryConcurrency, "SUMMARY_CONCURRENCY"); err != nil {
		return err
	}
	if err := setInt(&c.RateLimitBurst, "RATE_LIMIT_BURST"); err != nil {
		return err
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = rps
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.CacheTTL = ttl
	}

	return nil
}

// Validate fails when a selected backend is missing its credentials.
func (c Config) Validate() error {
	switch c.NewsProvider {
	case news.ProviderNewsAPI:
		if c.NewsAPIKey == "" {
			return errors.New("NEWS_API_KEY is required for the newsapi provider")
		}
	case news.ProviderFinnHub:
		if c.FinnhubAPIKey == "" {
			return errors.New("FINNHUB_API_KEY is required for the finnhub provider")
		}
	case news.ProviderAlphaVantage:
		if c.AlphaVantageAPIKey == "" {
			return errors.New("ALPHAVANTAGE_API_KEY is required for the alphavantage provider")
		}
	case news.ProviderMassive:
		if c.MassiveAPIKey == "" {
			return errors.New("MASSIVE_API_KEY is required for the massive provider")
		}
	case news.ProviderGoogleNews:
	default:
		return fmt.Errorf("unknown news provider: %s", c.NewsProvider)
	}

	switch c.SummarizerBackend {
	case nlp.BackendHuggingFace:
	case nlp.BackendOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai summarizer")
		}
	default:
		return fmt.Errorf("unknown summarizer backend: %s", c.SummarizerBackend)
	}

	switch c.TranslatorBackend {
	case translate.Backend:
	case llm.BackendOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai translator")
		}
	case llm.BackendAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required for the anthropic translator")
		}
	case llm.BackendGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini translator")
		}
	default:
		return fmt.Errorf("unknown translator backend: %s", c.TranslatorBackend)
	}

	switch c.SpeechBackend {
	case speech.BackendGTTS:
	case speech.BackendOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai speech backend")
		}
	default:
		return fmt.Errorf("unknown speech backend: %s", c.SpeechBackend)
	}

	if strings.TrimSpace(c.NarrationLanguage) == "" {
		return errors.New("narration language must not be empty")
	}
	if c.SummaryMinTokens <= 0 || c.SummaryMaxTokens <= 0 {
		return errors.New("summary token bounds must be positive")
	}
	if c.SummaryMinTokens > c.SummaryMaxTokens {
		return fmt.Errorf("summary min tokens %d exceeds max %d", c.SummaryMinTokens, c.SummaryMaxTokens)
	}
	if c.SummaryConcurrency <= 0 {
		return errors.New("summary concurrency must be positive")
	}
	if c.CacheTTL <= 0 {
		return errors.New("cache ttl must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone must be a valid IANA identifier: %w", err)
	}
	return nil
}

// NewsAPIKeyFor returns the credential of the configured news provider.
func (c Config) NewsAPIKeyFor() string {
	switch c.NewsProvider {
	case news.ProviderFinnHub:
		return c.FinnhubAPIKey
	case news.ProviderAlphaVantage:
		return c.AlphaVantageAPIKey
	case news.ProviderMassive:
		return c.MassiveAPIKey
	default:
		return c.NewsAPIKey
	}
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var items []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}
