package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
)

// The speech endpoint rejects inputs over 4096 characters.
const openAIMaxChars = 4000

type OpenAIClient struct {
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.AudioSpeechNewParamsVoice
}

func NewOpenAIClient(apiKey string, opts ...option.RequestOption) *OpenAIClient {
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIClient{
		client: &client,
		model:  openai.SpeechModelTTS1,
		voice:  openai.AudioSpeechNewParamsVoiceAlloy,
	}
}

func (c *OpenAIClient) Name() string {
	return "openai-tts"
}

// Synthesize ignores lang: the model infers the language from the text.
func (c *OpenAIClient) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := nlp.SplitText(text, openAIMaxChars)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("openai tts: nothing to speak")
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
			Model:          c.model,
			Voice:          c.voice,
			Input:          chunk,
			ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
		})
		if err != nil {
			return nil, fmt.Errorf("openai tts chunk %d/%d: %w", i+1, len(chunks), err)
		}

		_, err = io.Copy(&audio, resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("openai tts read: %w", err)
		}
	}

	if err := checkMP3(c.Name(), audio.Bytes()); err != nil {
		return nil, err
	}

	return audio.Bytes(), nil
}
