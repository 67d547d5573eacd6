package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const alphaVantageURL = "https://www.alphavantage.co/query"

type AlphaVantageClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

// Fetch looks the company up with SYMBOL_SEARCH and returns the latest
// NEWS_SENTIMENT items for the best matching ticker.
func (c *AlphaVantageClient) Fetch(ctx context.Context, company string) ([]Article, error) {
	var matches avSearchResponse
	err := c.query(ctx, url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {company},
	}, &matches)
	if err != nil {
		return nil, fmt.Errorf("alphavantage symbol search: %w", err)
	}

	var candidates []string
	for _, m := range matches.BestMatches {
		candidates = append(candidates, m.Symbol)
	}

	symbol := pickSymbol(candidates)
	if symbol == "" {
		return nil, nil
	}

	var raw avResponse
	err = c.query(ctx, url.Values{
		"function": {"NEWS_SENTIMENT"},
		"tickers":  {symbol},
		"sort":     {"LATEST"},
		"limit":    {strconv.Itoa(MaxArticles)},
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("alphavantage news: %w", err)
	}

	articles := make([]Article, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		if len(articles) == MaxArticles {
			break
		}

		publishedAt, err := time.Parse("20060102T150405", item.TimePublished)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       item.Title,
			Description: item.Summary,
			URL:         item.URL,
			Publisher:   item.Source,
			PublishedAt: publishedAt,
			Source:      c.Name(),
		})
	}

	return articles, nil
}

// query reports rate limit and key errors, which Alpha Vantage returns with
// status 200, as errors.
func (c *AlphaVantageClient) query(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, alphaVantageURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var status avStatus
	if err := json.Unmarshal(body, &status); err == nil {
		if msg := status.message(); msg != "" {
			return fmt.Errorf("api error: %s", msg)
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 512 {
		s = s[:512]
	}
	return s
}

type avStatus struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (s avStatus) message() string {
	switch {
	case s.ErrorMessage != "":
		return s.ErrorMessage
	case s.Note != "":
		return s.Note
	default:
		return s.Information
	}
}

type avSearchResponse struct {
	BestMatches []avMatch `json:"bestMatches"`
}

type avMatch struct {
	Symbol string `json:"1. symbol"`
	Name   string `json:"2. name"`
}

type avResponse struct {
	Feed []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
}
