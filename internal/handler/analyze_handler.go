package handler

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pandaR2708/AI-News-analyzer/internal/model"
)

const audioFilename = "output.mp3"

type AnalysisService interface {
	Analyze(ctx context.Context, company string) model.AnalysisResult
}

type AnalysisHistory interface {
	GetAnalyses(ctx context.Context, company string, limit, offset int) ([]model.StoredAnalysis, error)
	GetAnalysisTotal(ctx context.Context, company string) (int, error)
}

type AnalyzeHandler struct {
	service AnalysisService
	history AnalysisHistory
}

// NewAnalyzeHandler wires the analysis endpoints. history may be nil when no
// database is configured.
func NewAnalyzeHandler(service AnalysisService, history AnalysisHistory) *AnalyzeHandler {
	return &AnalyzeHandler{service: service, history: history}
}

func toArticleResponses(articles []model.ProcessedArticle) []ArticleResponse {
	res := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		res = append(res, ArticleResponse{
			Title:     a.Title,
			Summary:   a.Summary,
			Sentiment: string(a.Sentiment),
		})
	}
	return res
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	company := c.Query("company")

	result := h.service.Analyze(c.Request.Context(), company)
	if result.Message != "" {
		c.JSON(http.StatusOK, MessageResponse{Message: result.Message})
		return
	}

	res := AnalyzeResponse{
		Articles: toArticleResponses(result.Articles),
	}

	if len(result.Audio) > 0 {
		encoded := base64.StdEncoding.EncodeToString(result.Audio)
		res.AudioBase64 = &encoded
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnalyzeHandler) GetAudio(c *gin.Context) {
	company := c.Query("company")

	result := h.service.Analyze(c.Request.Context(), company)
	if result.Message != "" {
		c.JSON(http.StatusOK, MessageResponse{Message: result.Message})
		return
	}

	if len(result.Audio) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No audio available"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+audioFilename+`"`)
	c.Data(http.StatusOK, "audio/mpeg", result.Audio)
}

func (h *AnalyzeHandler) GetAnalyses(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is not configured"})
		return
	}

	company := c.Query("company")
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	analyses, err := h.history.GetAnalyses(c.Request.Context(), company, limit, offset)
	if err != nil {
		slog.Error("error fetching analyses", "company", company, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.history.GetAnalysisTotal(c.Request.Context(), company)
	if err != nil {
		slog.Error("error fetching analysis total", "company", company, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]AnalysisSummaryResponse, 0, len(analyses))
	for _, a := range analyses {
		items = append(items, AnalysisSummaryResponse{
			ID:           a.ID,
			Company:      a.Company,
			ArticleCount: a.ArticleCount,
			HasAudio:     a.HasAudio,
			Articles:     toArticleResponses(a.Articles),
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, AnalysesResponse{
		Analyses: items,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}
