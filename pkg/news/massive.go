package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const massiveBaseURL = "https://api.massive.com"

type MassiveClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewMassiveClient(apiKey string) *MassiveClient {
	return &MassiveClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *MassiveClient) Name() string {
	return "Massive"
}

// Fetch searches active stock tickers by company name and returns the newest
// reference news for the best match.
func (c *MassiveClient) Fetch(ctx context.Context, company string) ([]Article, error) {
	var tickers massiveTickerResponse
	err := c.get(ctx, "/v3/reference/tickers", url.Values{
		"search": {company},
		"market": {"stocks"},
		"active": {"true"},
		"limit":  {"10"},
	}, &tickers)
	if err != nil {
		return nil, fmt.Errorf("massive ticker search: %w", err)
	}

	var candidates []string
	for _, t := range tickers.Results {
		candidates = append(candidates, t.Ticker)
	}

	symbol := pickSymbol(candidates)
	if symbol == "" {
		return nil, nil
	}

	var raw massiveResponse
	err = c.get(ctx, "/v2/reference/news", url.Values{
		"ticker": {symbol},
		"limit":  {strconv.Itoa(MaxArticles)},
		"order":  {"desc"},
		"sort":   {"published_utc"},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("massive news: %w", err)
	}

	articles := make([]Article, 0, len(raw.Results))
	for _, item := range raw.Results {
		if len(articles) == MaxArticles {
			break
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedUTC)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Description,
			URL:         item.ArticleURL,
			Publisher:   item.Publisher.Name,
			PublishedAt: publishedAt,
			Source:      c.Name(),
		})
	}

	return articles, nil
}

func (c *MassiveClient) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, massiveBaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

type massiveTickerResponse struct {
	Results []massiveTicker `json:"results"`
}

type massiveTicker struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

type massiveResponse struct {
	Results []massiveResult `json:"results"`
}

type massiveResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ArticleURL   string           `json:"article_url"`
	PublishedUTC string           `json:"published_utc"`
	Publisher    massivePublisher `json:"publisher"`
}

type massivePublisher struct {
	Name string `json:"name"`
}
