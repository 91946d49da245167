package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/ordersvc/internal/events"
)

// Dispatcher publishes event messages in the background with a bounded queue.
// Delivery is best-effort: a full queue or a failed publish is logged and dropped.
type Dispatcher struct {
	publisher events.Publisher
	timeout   time.Duration
	workers   int
	logger    *slog.Logger

	jobs    chan events.Message
	wg      sync.WaitGroup
	mu      sync.RWMutex
	started bool
	stopped bool
	baseCtx context.Context
}

// NewDispatcher constructs the publish worker pool.
func NewDispatcher(publisher events.Publisher, workers, queueSize int, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &Dispatcher{
		publisher: publisher,
		timeout:   timeout,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan events.Message, queueSize),
		baseCtx:   context.Background(),
	}
}

// Start launches the workers. Cancelling ctx does not abort queued messages;
// Stop drains them.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.stopped {
		return
	}
	d.started = true
	d.baseCtx = context.WithoutCancel(ctx)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Stop closes the queue and waits for workers to publish what is left.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

// Notify enqueues msg without blocking the caller.
func (d *Dispatcher) Notify(msg events.Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.logger.Warn("event dropped, dispatcher stopped", slog.String("topic", msg.Topic), slog.String("order_id", msg.Key))
		return
	}

	select {
	case d.jobs <- msg:
	default:
		d.logger.Error("event dropped, publish queue full", slog.String("topic", msg.Topic), slog.String("order_id", msg.Key))
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for msg := range d.jobs {
		d.publish(msg)
	}
}

func (d *Dispatcher) publish(msg events.Message) {
	d.mu.RLock()
	base := d.baseCtx
	d.mu.RUnlock()

	ctx := base
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(base, d.timeout)
		defer cancel()
	}

	if err := d.publisher.Publish(ctx, msg); err != nil {
		d.logger.Error("event publish failed",
			slog.String("topic", msg.Topic),
			slog.String("order_id", msg.Key),
			slog.String("error", err.Error()),
		)
		return
	}
	d.logger.Info("event published", slog.String("topic", msg.Topic), slog.String("order_id", msg.Key))
}
