package worker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/pandaR2708/AI-News-analyzer/internal/model"
	"github.com/robfig/cron/v3"
)

const popTimeout = 5 * time.Second

type Queue interface {
	Push(ctx context.Context, company string) error
	Pop(ctx context.Context, timeout time.Duration) (string, error)
	DeadLetter(ctx context.Context, company string) error
}

type Refresher interface {
	Refresh(ctx context.Context, company string) model.AnalysisResult
}

// Worker precomputes analyses for a watchlist of companies. A cron schedule
// enqueues the watchlist and Run drains the queue.
type Worker struct {
	queue     Queue
	refresher Refresher
	watchlist []string
	cron      *cron.Cron
}

func New(queue Queue, refresher Refresher, watchlist []string, loc *time.Location) *Worker {
	if loc == nil {
		loc = time.UTC
	}
	return &Worker{
		queue:     queue,
		refresher: refresher,
		watchlist: watchlist,
		cron:      cron.New(cron.WithLocation(loc)),
	}
}

// Schedule registers the watchlist enqueue job on a standard five-field
// cron spec.
func (w *Worker) Schedule(ctx context.Context, spec string) error {
	_, err := w.cron.AddFunc(spec, func() {
		w.EnqueueWatchlist(ctx)
	})
	return err
}

func (w *Worker) EnqueueWatchlist(ctx context.Context) int {
	queued := 0
	for _, company := range w.watchlist {
		if err := w.queue.Push(ctx, company); err != nil {
			slog.Error("error pushing company to queue", "company", company, "error", err)
			continue
		}
		queued++
	}
	slog.Info("watchlist enqueued", "count", queued)
	return queued
}

// Run starts the scheduler and processes queued companies until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	w.cron.Start()
	defer func() {
		<-w.cron.Stop().Done()
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		company, err := w.queue.Pop(ctx, popTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			slog.Error("error popping from queue", "error", err)
			return err
		}

		if company == "" {
			continue
		}

		w.Process(ctx, company)
	}
}

// Process analyzes one queued company. Blank entries go to the dead letter
// queue.
func (w *Worker) Process(ctx context.Context, company string) {
	if strings.TrimSpace(company) == "" {
		slog.Warn("invalid company in queue, moving to dead letter")
		if err := w.queue.DeadLetter(ctx, company); err != nil {
			slog.Error("error moving to dead letter", "error", err)
		}
		return
	}

	start := time.Now()
	res := w.refresher.Refresh(ctx, company)

	if res.Message != "" {
		slog.Warn("no analysis produced", "company", company, "message", res.Message)
		return
	}

	slog.Info("analysis refreshed",
		"company", company,
		"analysis_id", res.ID,
		"articles", len(res.Articles),
		"has_audio", len(res.Audio) > 0,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
