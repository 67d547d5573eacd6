package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pandaR2708/AI-News-analyzer/internal/model"
)

// MaxArticles caps every provider's result, keeping the upstream ranking.
const MaxArticles = 10

const (
	ProviderNewsAPI      = "newsapi"
	ProviderFinnHub      = "finnhub"
	ProviderAlphaVantage = "alphavantage"
	ProviderMassive      = "massive"
	ProviderGoogleNews   = "googlenews"
)

type Article struct {
	Title       string
	Description string
	URL         string
	Publisher   string
	Source      string
	PublishedAt time.Time
}

type NewsClient interface {
	Fetch(ctx context.Context, company string) ([]Article, error)
	Name() string
}

// NewClient builds the client for the configured provider.
func NewClient(provider, apiKey string) (NewsClient, error) {
	switch provider {
	case ProviderNewsAPI, "":
		if apiKey == "" {
			return nil, fmt.Errorf("newsapi: missing api key")
		}
		return NewNewsAPIClient(apiKey), nil
	case ProviderFinnHub:
		if apiKey == "" {
			return nil, fmt.Errorf("finnhub: missing api key")
		}
		return NewFinnHubClient(apiKey), nil
	case ProviderAlphaVantage:
		if apiKey == "" {
			return nil, fmt.Errorf("alphavantage: missing api key")
		}
		return NewAlphaVantageClient(apiKey), nil
	case ProviderMassive:
		if apiKey == "" {
			return nil, fmt.Errorf("massive: missing api key")
		}
		return NewMassiveClient(apiKey), nil
	case ProviderGoogleNews:
		return NewGoogleNewsClient(), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", provider)
	}
}

// ToModel converts provider articles to the pipeline model, filling missing
// fields with placeholders and applying the MaxArticles cap.
func ToModel(articles []Article) []model.Article {
	if len(articles) > MaxArticles {
		articles = articles[:MaxArticles]
	}

	res := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		// a missing description is summarized as the placeholder text itself
		res = append(res, model.Article{
			Title:       orPlaceholder(a.Title, model.NoTitle),
			Description: orPlaceholder(a.Description, model.NoSummary),
		})
	}
	return res
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
