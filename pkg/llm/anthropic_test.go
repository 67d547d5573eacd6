package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/go-playground/assert/v2"
)

func TestAnthropicTranslate(t *testing.T) {
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "\"एक्मे पर मुकदमा।\""}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	out, err := client.Translate(context.Background(), "Acme faces lawsuit.", "en", "hi")

	assert.Equal(t, nil, err)
	assert.Equal(t, "एक्मे पर मुकदमा।", out)
	assert.Equal(t, "/v1/messages", gotPath)
}

func TestAnthropicTranslateEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-haiku-4-5","content":[],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":0}}`)
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	_, err := client.Translate(context.Background(), "text", "en", "hi")

	assert.NotEqual(t, nil, err)
}

func TestAnthropicTranslateTruncated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-haiku-4-5",
			"content": [{"type": "text", "text": "एक्मे पर"}],
			"stop_reason": "max_tokens",
			"usage": {"input_tokens": 10, "output_tokens": 4096}
		}`)
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	out, err := client.Translate(context.Background(), "Acme faces lawsuit.", "en", "hi")

	assert.NotEqual(t, nil, err)
	assert.Equal(t, "", out)
}

func TestAnthropicTranslateChunksLongText(t *testing.T) {
	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"msg_%d","type":"message","role":"assistant","model":"claude-haiku-4-5","content":[{"type":"text","text":"भाग%d"}],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`, n, n)
	}))
	defer srv.Close()

	client := NewAnthropicClient("test-key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))

	long := strings.Repeat("Acme reported strong quarterly results. ", 150)
	out, err := client.Translate(context.Background(), long, "en", "hi")

	assert.Equal(t, nil, err)
	assert.Equal(t, int32(2), requests.Load())
	assert.Equal(t, "भाग1 भाग2", out)
}
