package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Queue = (*RedisQueue)(nil)

// RedisQueue is a reliable list queue. Producers LPUSH onto key; consumers
// atomically move the oldest entry into key:processing and remove it from
// there once handled. Entries left in key:processing by a crashed worker
// are put back by Recover.
type RedisQueue struct {
	client redis.Cmdable
	key    string
}

// NewRedisQueue returns a RedisQueue on the list named key.
func NewRedisQueue(client redis.Cmdable, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) processingKey() string { return q.key + ":processing" }
func (q *RedisQueue) deadKey() string       { return q.key + ":dead" }

// Enqueue pushes job onto the queue.
func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job %s: %w", job.Name, err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next job.
// Payloads that cannot be decoded are moved to the dead list.
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*Delivery, error) {
	raw, err := q.client.BRPopLPush(ctx, q.key, q.processingKey(), timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoJob
		}
		return nil, err
	}

	d := &Delivery{raw: raw}
	if err := json.Unmarshal([]byte(raw), &d.Job); err != nil {
		if dlErr := q.DeadLetter(ctx, d); dlErr != nil {
			slog.Error("failed to dead-letter undecodable job", "queue", q.key, "error", dlErr)
		}
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return d, nil
}

// Ack removes a handled delivery from the processing list.
func (q *RedisQueue) Ack(ctx context.Context, d *Delivery) error {
	return q.client.LRem(ctx, q.processingKey(), 1, d.raw).Err()
}

// DeadLetter parks a delivery on key:dead and acknowledges it.
func (q *RedisQueue) DeadLetter(ctx context.Context, d *Delivery) error {
	if err := q.client.LPush(ctx, q.deadKey(), d.raw).Err(); err != nil {
		return err
	}
	return q.Ack(ctx, d)
}

// Recover moves every entry of the processing list back onto the queue and
// returns how many were moved. Call it before starting consumers.
func (q *RedisQueue) Recover(ctx context.Context) (int, error) {
	moved := 0
	for {
		err := q.client.RPopLPush(ctx, q.processingKey(), q.key).Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, err
		}
		moved++
	}
}
