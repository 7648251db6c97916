// Package handler provides the HTTP handler of the report feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"candidate_backend/internal/feature/report/usecase"
)

// Dispatcher queues report jobs.
type Dispatcher interface {
	DispatchReportGeneration(ctx context.Context) (usecase.Ack, error)
}

type ReportHandler struct {
	dispatcher Dispatcher
}

func NewReportHandler(dispatcher Dispatcher) *ReportHandler {
	return &ReportHandler{dispatcher: dispatcher}
}

// GenerateReport handles GET /candidates/generate-report.
// It answers 202 as soon as the job is queued and 503 when the queue is unreachable.
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	ack, err := h.dispatcher.DispatchReportGeneration(c.Request.Context())
	if err != nil {
		slog.Error("report dispatch failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "report queue unavailable"})
		return
	}
	c.JSON(http.StatusAccepted, ack)
}
