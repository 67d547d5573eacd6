package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/pandaR2708/AI-News-analyzer/internal/app"
	"github.com/pandaR2708/AI-News-analyzer/internal/config"
)

func main() {
	company := flag.String("company", "", "company to analyze")
	out := flag.String("out", "output.mp3", "path of the narration file")
	flag.Parse()

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx := context.Background()

	a, err := app.NewPipeline(ctx, cfg)
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}
	defer a.Close()

	result := a.Orchestrator.Analyze(ctx, *company)
	if result.Message != "" {
		fmt.Println(result.Message)
		return
	}

	for i, article := range result.Articles {
		fmt.Printf("%d. %s\n   %s\n   Sentiment: %s\n", i+1, article.Title, article.Summary, article.Sentiment)
	}

	if len(result.Audio) == 0 {
		slog.Warn("narration unavailable", "company", result.Company)
		return
	}

	if err := os.WriteFile(*out, result.Audio, 0o644); err != nil {
		log.Fatalf("error writing narration: %v", err)
	}

	slog.Info("narration saved", "company", result.Company, "path", *out, "bytes", len(result.Audio))
}
