package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"candidate_backend/internal/app/di"
	"candidate_backend/internal/config"
	candidateadapters "candidate_backend/internal/feature/candidates/adapters"
	reportadapters "candidate_backend/internal/feature/report/adapters"
	reportusecase "candidate_backend/internal/feature/report/usecase"
	"candidate_backend/internal/feature/report/worker"
	"candidate_backend/internal/platform/db"
	"candidate_backend/internal/platform/logging"
	"candidate_backend/internal/platform/queue"
	infraredis "candidate_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if !cfg.RedisEnabled() {
		slog.Error("REDIS_HOST must be set for the standalone worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gdb, err := db.OpenDB(cfg.Database(), di.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		slog.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	q := queue.NewRedisQueue(rdb, cfg.ReportQueueKey)
	moved, err := q.Recover(ctx)
	if err != nil {
		slog.Error("failed to recover in-flight jobs", "error", err)
		os.Exit(1)
	}
	if moved > 0 {
		slog.Info("requeued in-flight jobs", "count", moved)
	}

	job := reportusecase.NewReportJob(
		candidateadapters.NewCandidateRepository(gdb),
		reportadapters.NewFileStore(cfg.ReportOutputDir),
	)
	w := worker.New(q, worker.Config{
		Concurrency: cfg.WorkerConcurrency,
		MaxAttempts: cfg.JobMaxAttempts,
		Backoff:     cfg.JobRetryBackoff,
	})
	w.Handle(reportusecase.JobCandidatesReport, job.Handle)

	if err := w.Run(ctx); err != nil {
		slog.Error("worker stopped", "error", err)
		os.Exit(1)
	}
}
