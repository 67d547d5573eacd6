package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
)

const (
	gttsURL      = "https://translate.google.com/translate_tts"
	gttsMaxChars = 100
)

// GTTSClient speaks text through the Google Translate TTS endpoint, one
// request per chunk, and concatenates the MP3 frames.
type GTTSClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGTTSClient() *GTTSClient {
	return &GTTSClient{
		baseURL:    gttsURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *GTTSClient) Name() string {
	return "gTTS"
}

func (c *GTTSClient) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := nlp.SplitText(text, gttsMaxChars)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("gtts: nothing to speak")
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		part, err := c.fetchChunk(ctx, chunk, lang, i, len(chunks))
		if err != nil {
			return nil, fmt.Errorf("gtts chunk %d/%d: %w", i+1, len(chunks), err)
		}
		audio.Write(part)
	}

	if err := checkMP3(c.Name(), audio.Bytes()); err != nil {
		return nil, err
	}

	return audio.Bytes(), nil
}

func (c *GTTSClient) fetchChunk(ctx context.Context, chunk, lang string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("q", chunk)
	q.Set("tl", lang)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://translate.google.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
