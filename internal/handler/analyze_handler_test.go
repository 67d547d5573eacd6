package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/pandaR2708/AI-News-analyzer/internal/model"
)

var mp3Header = []byte{'I', 'D', '3', 0x04, 0x00, 0x00}

type fakeService struct {
	result  model.AnalysisResult
	calls   atomic.Int32
	company string
}

func (f *fakeService) Analyze(ctx context.Context, company string) model.AnalysisResult {
	f.calls.Add(1)
	f.company = company
	return f.result
}

type fakeHistory struct {
	analyses []model.StoredAnalysis
	total    int
	err      error
	limit    int
	offset   int
}

func (f *fakeHistory) GetAnalyses(ctx context.Context, company string, limit, offset int) ([]model.StoredAnalysis, error) {
	f.limit = limit
	f.offset = offset
	return f.analyses, f.err
}

func (f *fakeHistory) GetAnalysisTotal(ctx context.Context, company string) (int, error) {
	return f.total, f.err
}

func newTestRouter(service AnalysisService, history AnalysisHistory) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	h := NewAnalyzeHandler(service, history)
	r.GET("/analyze", h.Analyze)
	r.GET("/analyze/audio", h.GetAudio)
	r.GET("/analyses", h.GetAnalyses)
	return r
}

func sampleResult(audio []byte) model.AnalysisResult {
	return model.AnalysisResult{
		ID:      "id-1",
		Company: "Tesla",
		Articles: []model.ProcessedArticle{
			{Title: "T1", Summary: "S1", Sentiment: model.SentimentPositive},
			{Title: "T2", Summary: "S2", Sentiment: model.SentimentNegative},
		},
		Audio: audio,
	}
}

func TestAnalyze_ReturnsArticlesAndAudio(t *testing.T) {
	svc := &fakeService{result: sampleResult(mp3Header)}
	r := newTestRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze?company=Tesla", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tesla", svc.company)

	var res AnalyzeResponse
	err := json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(res.Articles))
	assert.Equal(t, "T1", res.Articles[0].Title)
	assert.Equal(t, "Positive", res.Articles[0].Sentiment)
	assert.Equal(t, "Negative", res.Articles[1].Sentiment)
	assert.NotEqual(t, nil, res.AudioBase64)

	decoded, err := base64.StdEncoding.DecodeString(*res.AudioBase64)
	assert.Equal(t, nil, err)
	assert.Equal(t, mp3Header, decoded)
}

func TestAnalyze_AudioAbsentIsExplicitNull(t *testing.T) {
	svc := &fakeService{result: sampleResult(nil)}
	r := newTestRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze?company=Tesla", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	json.Unmarshal(w.Body.Bytes(), &raw)
	audio, ok := raw["audio_base64"]
	assert.Equal(t, true, ok)
	assert.Equal(t, "null", string(audio))
	_, hasMessage := raw["message"]
	assert.Equal(t, false, hasMessage)
}

func TestAnalyze_NoNewsMessage(t *testing.T) {
	svc := &fakeService{result: model.AnalysisResult{Company: "Nobody", Message: model.MessageNoNews}}
	r := newTestRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze?company=Nobody", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"message":"No news found."}`, w.Body.String())
}

func TestAnalyze_EmptyCompanyMessage(t *testing.T) {
	svc := &fakeService{result: model.AnalysisResult{Message: model.MessageInvalidCompany}}
	r := newTestRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze?company=", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"message":"Please enter a valid company name."}`, w.Body.String())
}

type panicService struct{}

func (panicService) Analyze(ctx context.Context, company string) model.AnalysisResult {
	panic("boom")
}

func TestAnalyze_PanicReturnsGenericError(t *testing.T) {
	r := newTestRouter(panicService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze?company=Tesla", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestGetAudio_ReturnsMP3Attachment(t *testing.T) {
	svc := &fakeService{result: sampleResult(mp3Header)}
	r := newTestRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze/audio?company=Tesla", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="output.mp3"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, mp3Header, w.Body.Bytes())
}

func TestGetAudio_NotFoundWithoutAudio(t *testing.T) {
	svc := &fakeService{result: sampleResult(nil)}
	r := newTestRouter(svc, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze/audio?company=Tesla", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAnalyses_ReturnsHistory(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{
		analyses: []model.StoredAnalysis{
			{
				ID:           "a1",
				Company:      "Tesla",
				ArticleCount: 1,
				HasAudio:     true,
				Articles:     []model.ProcessedArticle{{Title: "T", Summary: "S", Sentiment: model.SentimentNeutral}},
				CreatedAt:    created,
			},
		},
		total: 1,
	}
	r := newTestRouter(&fakeService{}, history)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyses?company=Tesla&limit=5&offset=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res AnalysesResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 5, res.Limit)
	assert.Equal(t, 2, res.Offset)
	assert.Equal(t, 1, len(res.Analyses))
	assert.Equal(t, "2026-03-01T12:00:00Z", res.Analyses[0].CreatedAt)
	assert.Equal(t, "Neutral", res.Analyses[0].Articles[0].Sentiment)
	assert.Equal(t, 5, history.limit)
}

func TestGetAnalyses_InvalidPaginationFallsBack(t *testing.T) {
	history := &fakeHistory{}
	r := newTestRouter(&fakeService{}, history)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyses?limit=abc&offset=-3", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, history.limit)
	assert.Equal(t, 0, history.offset)
}

func TestGetAnalyses_DatabaseError(t *testing.T) {
	history := &fakeHistory{err: errors.New("db down")}
	r := newTestRouter(&fakeService{}, history)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyses", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, `{"error":"Database error"}`, w.Body.String())
}

func TestGetAnalyses_WithoutHistory(t *testing.T) {
	r := newTestRouter(&fakeService{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyses", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
