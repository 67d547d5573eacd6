package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pandaR2708/AI-News-analyzer/internal/app"
	"github.com/pandaR2708/AI-News-analyzer/internal/config"
	"github.com/pandaR2708/AI-News-analyzer/internal/worker"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	if cfg.RedisURL == "" {
		log.Fatalf("REDIS_URL is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("error building app: %v", err)
	}
	defer a.Close()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("error loading timezone: %v", err)
	}

	w := worker.New(a.Queue, a.Service, cfg.Watchlist, loc)

	if len(cfg.Watchlist) == 0 {
		slog.Warn("WATCHLIST is empty, only externally queued companies will be analyzed")
	} else {
		if err := w.Schedule(ctx, cfg.WatchlistSchedule); err != nil {
			log.Fatalf("error scheduling watchlist: %v", err)
		}
		w.EnqueueWatchlist(ctx)
	}

	slog.Info("worker started", "watchlist", cfg.Watchlist, "schedule", cfg.WatchlistSchedule)

	if err := w.Run(ctx); err != nil {
		log.Fatalf("worker stopped: %v", err)
	}

	slog.Info("worker shut down")
}
