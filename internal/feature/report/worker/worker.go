// Package worker runs queued jobs on a fixed pool of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"candidate_backend/internal/platform/queue"
)

const (
	defaultPollTimeout = 5 * time.Second
	defaultBackoff     = 2 * time.Second
)

// Handler runs one job. A returned error makes the worker retry the job.
type Handler func(ctx context.Context, job queue.Job) error

// Config tunes a Worker. Zero values fall back to one goroutine,
// three attempts, a 2s backoff step and a 5s poll timeout.
type Config struct {
	Concurrency int
	MaxAttempts int
	// Backoff is multiplied by the attempt number between retries.
	Backoff     time.Duration
	PollTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Concurrency < 1 {
		c.Concurrency = 1
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 3
	}
	if c.Backoff <= 0 {
		c.Backoff = defaultBackoff
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = defaultPollTimeout
	}
	return c
}

// Worker consumes deliveries and dispatches them to handlers by job name.
type Worker struct {
	consumer queue.Consumer
	cfg      Config
	handlers map[string]Handler
}

func New(consumer queue.Consumer, cfg Config) *Worker {
	return &Worker{
		consumer: consumer,
		cfg:      cfg.withDefaults(),
		handlers: make(map[string]Handler),
	}
}

// Handle registers h for jobs called name. Call it before Run.
func (w *Worker) Handle(name string, h Handler) {
	w.handlers[name] = h
}

// Run consumes until ctx is cancelled. A job that is running when ctx is
// cancelled is neither acked nor dead-lettered.
func (w *Worker) Run(ctx context.Context) error {
	slog.Info("worker started", "concurrency", w.cfg.Concurrency, "max_attempts", w.cfg.MaxAttempts)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.cfg.Concurrency; i++ {
		g.Go(func() error {
			return w.loop(ctx, i)
		})
	}
	err := g.Wait()

	slog.Info("worker stopped")
	return err
}

func (w *Worker) loop(ctx context.Context, id int) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		d, err := w.consumer.Dequeue(ctx, w.cfg.PollTimeout)
		switch {
		case err == nil:
			w.process(ctx, d)
		case errors.Is(err, queue.ErrNoJob):
		case ctx.Err() != nil:
			return nil
		default:
			slog.Error("dequeue failed", "worker", id, "error", err)
			if sleep(ctx, w.cfg.Backoff) != nil {
				return nil
			}
		}
	}
}

func (w *Worker) process(ctx context.Context, d *queue.Delivery) {
	log := slog.With("job_id", d.Job.ID, "job", d.Job.Name)

	h, ok := w.handlers[d.Job.Name]
	if !ok {
		log.Error("no handler for job, dead-lettering")
		w.deadLetter(ctx, d, log)
		return
	}

	for attempt := 1; attempt <= w.cfg.MaxAttempts; attempt++ {
		err := call(ctx, h, d.Job)
		if err == nil {
			log.Info("job done", "attempt", attempt)
			if err := w.consumer.Ack(ctx, d); err != nil {
				log.Error("ack failed", "error", err)
			}
			return
		}
		if ctx.Err() != nil {
			log.Warn("job interrupted by shutdown", "attempt", attempt, "error", err)
			return
		}
		log.Warn("job failed", "attempt", attempt, "error", err)
		if attempt < w.cfg.MaxAttempts {
			if sleep(ctx, time.Duration(attempt)*w.cfg.Backoff) != nil {
				return
			}
		}
	}

	log.Error("job exhausted its attempts, dead-lettering", "max_attempts", w.cfg.MaxAttempts)
	w.deadLetter(ctx, d, log)
}

func (w *Worker) deadLetter(ctx context.Context, d *queue.Delivery, log *slog.Logger) {
	if err := w.consumer.DeadLetter(ctx, d); err != nil {
		log.Error("dead-letter failed", "error", err)
	}
}

// call runs h and turns a panic into an error.
func call(ctx context.Context, h Handler, job queue.Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h(ctx, job)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
