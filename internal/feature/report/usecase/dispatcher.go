// Package usecase holds the report dispatch and generation logic.
package usecase

import (
	"context"
	"fmt"

	"candidate_backend/internal/platform/queue"
)

// JobCandidatesReport is the queue job name of the candidates snapshot.
const JobCandidatesReport = "report.candidates"

// Ack is returned to the caller once a report job is queued.
type Ack struct {
	Message string `json:"message"`
}

type dispatcher struct {
	queue queue.Enqueuer
}

// NewDispatcher creates a dispatcher publishing onto q.
func NewDispatcher(q queue.Enqueuer) *dispatcher {
	return &dispatcher{queue: q}
}

// DispatchReportGeneration queues one candidates snapshot and returns
// without waiting for it. It fails only when the job cannot be queued.
func (d *dispatcher) DispatchReportGeneration(ctx context.Context) (Ack, error) {
	job := queue.NewJob(JobCandidatesReport)
	if err := d.queue.Enqueue(ctx, job); err != nil {
		return Ack{}, fmt.Errorf("failed to dispatch report: %w", err)
	}
	return Ack{Message: "Generating report..."}, nil
}
