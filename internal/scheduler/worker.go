package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker polls the delayed queue and delivers due activations. Failures
// are logged and retried on the next tick; an activation is acked only
// after the handler returns, giving at-least-once delivery.
type Worker struct {
	queue     *RedisScheduledQueue
	activator *Activator
	interval  time.Duration
	log       *zap.Logger
}

// NewWorker creates a new Worker polling at the given interval.
func NewWorker(queue *RedisScheduledQueue, activator *Activator, interval time.Duration, log *zap.Logger) *Worker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Worker{
		queue:     queue,
		activator: activator,
		interval:  interval,
		log:       log,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("scheduler worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	ids, err := w.queue.Due(ctx, Now())
	if err != nil {
		w.log.Error("scheduler poll failed", zap.Error(err))
		return
	}

	for _, id := range ids {
		if err := w.activator.Activate(ctx, id); err != nil {
			w.log.Error("post activation failed, will retry", zap.Uint("post_id", id), zap.Error(err))
			continue
		}
		if err := w.queue.Ack(ctx, id); err != nil {
			// Redelivery is harmless; activation is idempotent.
			w.log.Warn("failed to ack activation", zap.Uint("post_id", id), zap.Error(err))
		}
	}
}
