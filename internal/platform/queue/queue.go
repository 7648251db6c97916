// Package queue moves job requests from the HTTP process to the workers.
// Delivery is at-least-once: a job is removed only after Ack or DeadLetter.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoJob is returned by Dequeue when nothing arrived before the timeout.
	ErrNoJob = errors.New("no job available")

	// ErrQueueFull is returned by Enqueue when the in-process buffer is full.
	ErrQueueFull = errors.New("queue is full")
)

// Job names a unit of work. It carries no domain data; handlers load
// whatever they need when they run.
type Job struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewJob returns a Job with a fresh id.
func NewJob(name string) Job {
	return Job{ID: uuid.NewString(), Name: name, EnqueuedAt: time.Now().UTC()}
}

// Delivery is a dequeued Job that has not been acknowledged yet.
type Delivery struct {
	Job Job
	raw string
}

// Enqueuer is the producer side.
type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) error
}

// Consumer is the worker side.
type Consumer interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*Delivery, error)
	Ack(ctx context.Context, d *Delivery) error
	DeadLetter(ctx context.Context, d *Delivery) error
}

// Queue is both ends of a queue.
type Queue interface {
	Enqueuer
	Consumer
}
