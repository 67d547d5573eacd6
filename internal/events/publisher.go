package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pandaR2708/AI-News-analyzer/internal/model"
	"github.com/pandaR2708/AI-News-analyzer/pkg/nlp"
	"github.com/segmentio/kafka-go"
)

// AnalysisCompleted is published for every analysis that produced articles.
// Audio is left out; consumers fetch it through the API.
type AnalysisCompleted struct {
	ID         string                   `json:"id"`
	Company    string                   `json:"company"`
	Articles   []model.ProcessedArticle `json:"articles"`
	Sentiments map[model.Sentiment]int  `json:"sentiments"`
	// FailedSummaries counts articles carrying the summary failure sentinel.
	FailedSummaries int       `json:"failed_summaries"`
	HasAudio        bool      `json:"has_audio"`
	CreatedAt       time.Time `json:"created_at"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	slog.Info("kafka publisher initialized", "brokers", brokers, "topic", topic)
	return &Publisher{writer: writer}
}

func NewAnalysisCompleted(result *model.AnalysisResult) AnalysisCompleted {
	counts := map[model.Sentiment]int{
		model.SentimentPositive: 0,
		model.SentimentNegative: 0,
		model.SentimentNeutral:  0,
	}
	failed := 0
	for _, a := range result.Articles {
		counts[a.Sentiment]++
		if a.Summary == nlp.SummaryFailed {
			failed++
		}
	}

	return AnalysisCompleted{
		ID:              result.ID,
		Company:         result.Company,
		Articles:        result.Articles,
		Sentiments:      counts,
		FailedSummaries: failed,
		HasAudio:        len(result.Audio) > 0,
		CreatedAt:       result.CreatedAt,
	}
}

// PublishAnalysis keys the message by company so one company's events stay
// on one partition.
func (p *Publisher) PublishAnalysis(ctx context.Context, result *model.AnalysisResult) error {
	value, err := json.Marshal(NewAnalysisCompleted(result))
	if err != nil {
		return fmt.Errorf("failed to marshal analysis event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(result.Company),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write analysis event: %w", err)
	}

	slog.Info("published analysis event", "company", result.Company, "id", result.ID)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
