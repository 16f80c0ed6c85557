package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OverdueCounter is the slice of the task repository the worker needs.
type OverdueCounter interface {
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}

// OverdueWorker periodically logs how many tasks are past their due
// date, so operators can spot pile-ups without querying the database.
type OverdueWorker struct {
	counter  OverdueCounter
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
}

func NewOverdueWorker(counter OverdueCounter, logger *zap.Logger, interval time.Duration) *OverdueWorker {
	return &OverdueWorker{
		counter:  counter,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (w *OverdueWorker) Start(ctx context.Context) {
	w.logger.Info("Starting overdue worker", zap.Duration("interval", w.interval))

	w.wg.Add(1)
	go w.run(ctx)
}

func (w *OverdueWorker) Stop() {
	w.logger.Info("Stopping overdue worker...")
	close(w.stop)
	w.wg.Wait()
	w.logger.Info("Overdue worker stopped")
}

func (w *OverdueWorker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

func (w *OverdueWorker) check(ctx context.Context) {
	count, err := w.counter.CountOverdue(ctx, time.Now())
	if err != nil {
		w.logger.Error("overdue check failed", zap.Error(err))
		return
	}
	if count > 0 {
		w.logger.Warn("overdue tasks pending", zap.Int("count", count))
	}
}
