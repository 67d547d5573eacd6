package model

const (
	NoTitle   = "No Title"
	NoSummary = "No Summary"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Article is a headline and its short description as returned by a news source.
type Article struct {
	Title       string
	Description string
}

type ProcessedArticle struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Sentiment Sentiment `json:"sentiment"`
}
