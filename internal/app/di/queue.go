package di

import (
	"github.com/redis/go-redis/v9"

	"candidate_backend/internal/platform/queue"
)

// NewReportQueue creates the queue report jobs travel through.
// If Redis is available, it returns a Redis-backed queue shared with the
// worker process. Otherwise, it falls back to an in-process queue of size
// jobs, which only an in-process worker can drain.
func NewReportQueue(rdb *redis.Client, key string, size int) queue.Queue {
	if rdb != nil {
		return queue.NewRedisQueue(rdb, key)
	}
	return queue.NewMemoryQueue(size)
}
