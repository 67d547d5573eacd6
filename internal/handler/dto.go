package handler

type ArticleResponse struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
}

// AnalyzeResponse always carries audio_base64, null when narration failed.
type AnalyzeResponse struct {
	Articles    []ArticleResponse `json:"articles"`
	AudioBase64 *string           `json:"audio_base64"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type AnalysisSummaryResponse struct {
	ID           string            `json:"id"`
	Company      string            `json:"company"`
	ArticleCount int               `json:"article_count"`
	HasAudio     bool              `json:"has_audio"`
	Articles     []ArticleResponse `json:"articles"`
	CreatedAt    string            `json:"created_at"`
}

type AnalysesResponse struct {
	Analyses []AnalysisSummaryResponse `json:"analyses"`
	Total    int                       `json:"total"`
	Limit    int                       `json:"limit"`
	Offset   int                       `json:"offset"`
}
