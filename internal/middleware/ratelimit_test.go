package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

func newTestRouter(l *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/analyze", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doRequest(r *gin.Engine, remoteAddr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/analyze", nil)
	req.RemoteAddr = remoteAddr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_RejectsAfterBurst(t *testing.T) {
	r := newTestRouter(NewRateLimiter(0.001, 2))

	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "10.0.0.1:1234"))
}

func TestRateLimiter_SeparateBucketsPerIP(t *testing.T) {
	r := newTestRouter(NewRateLimiter(0.001, 1))

	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(r, "10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, doRequest(r, "10.0.0.2:1234"))
}

func TestRateLimiter_EvictIdle(t *testing.T) {
	l := NewRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.allow("10.0.0.1")
	now = now.Add(10 * time.Minute)
	l.allow("10.0.0.2")
	l.evictIdle()

	_, stale := l.clients["10.0.0.1"]
	_, fresh := l.clients["10.0.0.2"]
	assert.Equal(t, false, stale)
	assert.Equal(t, true, fresh)
}
