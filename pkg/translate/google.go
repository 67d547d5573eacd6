package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
)

const Backend = "google"

const (
	googleURL      = "https://translate.googleapis.com/translate_a/single"
	googleMaxChars = 1800
)

// GoogleClient uses the public Google Translate endpoint, which needs no key.
type GoogleClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGoogleClient() *GoogleClient {
	return &GoogleClient{
		baseURL:    googleURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *GoogleClient) Name() string {
	return "google-translate"
}

func (c *GoogleClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	chunks := nlp.SplitText(text, googleMaxChars)
	if len(chunks) == 0 {
		return "", fmt.Errorf("google translate: empty text")
	}

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		translated, err := c.translateChunk(ctx, chunk, source, target)
		if err != nil {
			return "", fmt.Errorf("google translate chunk %d/%d: %w", i+1, len(chunks), err)
		}
		parts = append(parts, translated)
	}

	return strings.Join(parts, " "), nil
}

func (c *GoogleClient) translateChunk(ctx context.Context, chunk, source, target string) (string, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	return parseGoogleResponse(raw)
}

// parseGoogleResponse joins the translated segments of a response shaped like
// [[["translated","original",...],...],...].
func parseGoogleResponse(raw []byte) (string, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(top) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var segments [][]interface{}
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			sb.WriteString(s)
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("no translated text")
	}
	return out, nil
}
