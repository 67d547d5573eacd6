package news

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const googleNewsURL = "https://news.google.com/rss/search"

var tagPattern = regexp.MustCompile(`<[^>]*>`)

type GoogleNewsClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGoogleNewsClient() *GoogleNewsClient {
	return &GoogleNewsClient{
		baseURL:    googleNewsURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *GoogleNewsClient) Name() string {
	return "GoogleNews"
}

func (c *GoogleNewsClient) Fetch(ctx context.Context, company string) ([]Article, error) {
	q := url.Values{}
	q.Set("q", company)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("googlenews request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("googlenews fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("googlenews status %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("googlenews parse: %w", err)
	}

	articles := make([]Article, 0, MaxArticles)
	for _, item := range feed.Items {
		if len(articles) == MaxArticles {
			break
		}

		a := Article{
			Title:       cleanText(item.Title),
			Description: cleanText(item.Description),
			URL:         item.Link,
			Source:      c.Name(),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		if item.Author != nil {
			a.Publisher = item.Author.Name
		}

		articles = append(articles, a)
	}

	return articles, nil
}

// cleanText drops markup and collapses whitespace in feed fields.
func cleanText(s string) string {
	s = html.UnescapeString(tagPattern.ReplaceAllString(s, " "))
	return strings.Join(strings.Fields(s), " ")
}
