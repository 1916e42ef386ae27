package sync

import (
	"context"
	"log"
	"time"
)

// Fetcher downloads the workbook from object storage before a run.
// Optional: with no fetcher the engine reads the local path directly.
type Fetcher interface {
	Download(ctx context.Context, key, dest string) error
}

// Worker runs the engine on a fixed interval.
type Worker struct {
	engine   *Engine
	interval time.Duration

	fetcher   Fetcher
	objectKey string
}

func NewWorker(engine *Engine, interval time.Duration) *Worker {
	return &Worker{engine: engine, interval: interval}
}

// WithFetcher makes the worker pull the workbook from object storage into
// the engine's path before every run.
func (w *Worker) WithFetcher(f Fetcher, objectKey string) *Worker {
	w.fetcher = f
	w.objectKey = objectKey
	return w
}

// Run blocks, running one reconciliation pass per tick. A failed pass is
// logged and never stops the loop.
func (w *Worker) Run() {
	log.Printf("Sync worker started, checking excel every %s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for range ticker.C {
		w.RunOnce(context.Background())
	}
}

// RunOnce performs a single pass and logs its outcome.
func (w *Worker) RunOnce(ctx context.Context) {
	if w.fetcher != nil {
		if err := w.fetcher.Download(ctx, w.objectKey, w.engine.path); err != nil {
			log.Printf("⚠️  sync: workbook download failed: %v", err)
			return
		}
	}

	status, err := w.engine.Run(ctx)
	if err != nil {
		log.Printf("⚠️  sync error: %v", err)
		return
	}
	log.Println("sync:", status)
}
