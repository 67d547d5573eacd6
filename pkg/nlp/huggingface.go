package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	huggingFaceURL   = "https://router.huggingface.co/hf-inference/models"
	DefaultHFModel   = "facebook/bart-large-cnn"
	huggingFaceBeams = 4
)

// HuggingFaceModel calls a hosted sequence-to-sequence summarization model.
type HuggingFaceModel struct {
	token      string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewHuggingFaceModel(token, model string) *HuggingFaceModel {
	if model == "" {
		model = DefaultHFModel
	}
	return &HuggingFaceModel{
		token:      token,
		model:      model,
		baseURL:    huggingFaceURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (m *HuggingFaceModel) Name() string {
	return m.model
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MinLength     int    `json:"min_length"`
	MaxLength     int    `json:"max_length"`
	NumBeams      int    `json:"num_beams"`
	EarlyStopping bool   `json:"early_stopping"`
	DoSample      bool   `json:"do_sample"`
	Truncation    string `json:"truncation"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

func (m *HuggingFaceModel) GenerateSummary(ctx context.Context, text string, minTokens, maxTokens int) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MinLength:     minTokens,
			MaxLength:     maxTokens,
			NumBeams:      huggingFaceBeams,
			EarlyStopping: true,
			Truncation:    "only_first",
		},
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("huggingface marshal: %w", err)
	}

	url := fmt.Sprintf("%s/%s", m.baseURL, m.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("huggingface request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("huggingface read: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface status %d: %s", resp.StatusCode, raw)
	}

	var parsed []hfSummary
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("huggingface decode: %w", err)
	}

	if len(parsed) == 0 {
		return "", fmt.Errorf("no summary from huggingface")
	}

	return parsed[0].SummaryText, nil
}
