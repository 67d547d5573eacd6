package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const finnhubLookback = 7 * 24 * time.Hour

type FinnHubClient struct {
	client *finnhub.DefaultApiService
	now    func() time.Time
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client, now: time.Now}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

// Fetch resolves the company name to a ticker and returns that ticker's news
// over the last week.
func (c *FinnHubClient) Fetch(ctx context.Context, company string) ([]Article, error) {
	lookup, _, err := c.client.SymbolSearch(ctx).Q(company).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub symbol search: %w", err)
	}

	var candidates []string
	for _, info := range lookup.GetResult() {
		candidates = append(candidates, info.GetSymbol())
	}

	symbol := pickSymbol(candidates)
	if symbol == "" {
		return nil, nil
	}

	to := c.now()
	from := to.Add(-finnhubLookback)

	res, _, err := c.client.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub company news: %w", err)
	}

	var articles []Article

	for _, news := range res {
		if len(articles) == MaxArticles {
			break
		}

		a := Article{
			Source: c.Name(),
		}

		if news.Headline != nil {
			a.Title = *news.Headline
		}

		if news.Summary != nil {
			a.Description = *news.Summary
		}

		if news.Url != nil {
			a.URL = *news.Url
		}

		if news.Datetime != nil {
			a.PublishedAt = time.Unix(*news.Datetime, 0)
		}

		if news.Source != nil {
			a.Publisher = *news.Source
		}

		articles = append(articles, a)
	}

	return articles, nil
}

// pickSymbol prefers a primary listing (no exchange suffix) and falls back to
// the first non-empty symbol.
func pickSymbol(symbols []string) string {
	fallback := ""
	for _, s := range symbols {
		if s == "" {
			continue
		}
		if !strings.Contains(s, ".") {
			return s
		}
		if fallback == "" {
			fallback = s
		}
	}
	return fallback
}
