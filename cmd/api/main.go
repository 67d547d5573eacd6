package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pandaR2708/AI-News-analyzer/internal/app"
	"github.com/pandaR2708/AI-News-analyzer/internal/config"
	"github.com/pandaR2708/AI-News-analyzer/internal/handler"
	"github.com/pandaR2708/AI-News-analyzer/internal/middleware"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("error building app: %v", err)
	}
	defer a.Close()

	analyzeHandler := handler.NewAnalyzeHandler(a.Service, a.History())
	healthHandler := handler.NewHealthHandler(a.HealthChecks())

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx)

	r := gin.New()
	r.Use(gin.Logger(), handler.Recovery())

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	analyze := r.Group("/analyze", limiter.Middleware())
	analyze.GET("", analyzeHandler.Analyze)
	analyze.GET("/audio", analyzeHandler.GetAudio)

	r.GET("/analyses", analyzeHandler.GetAnalyses)
	r.GET("/health", healthHandler.GetHealth)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
