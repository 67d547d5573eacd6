package model

import "time"

const (
	MessageInvalidCompany = "Please enter a valid company name."
	MessageNoNews         = "No news found."
)

type AnalysisResult struct {
	ID        string             `json:"id"`
	Company   string             `json:"company"`
	Message   string             `json:"message,omitempty"`
	Articles  []ProcessedArticle `json:"articles"`
	Audio     []byte             `json:"audio,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// HasArticles reports whether the pipeline produced a report, as opposed to a
// validation warning or the no-news message.
func (r *AnalysisResult) HasArticles() bool {
	return r.Message == "" && len(r.Articles) > 0
}

type StoredAnalysis struct {
	ID           string
	Company      string
	ArticleCount int
	HasAudio     bool
	Articles     []ProcessedArticle
	CreatedAt    time.Time
}
