package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"candidate_backend/internal/app/di"
	"candidate_backend/internal/app/router"
	"candidate_backend/internal/config"
	authadapters "candidate_backend/internal/feature/auth/adapters"
	authhandler "candidate_backend/internal/feature/auth/transport/handler"
	authusecase "candidate_backend/internal/feature/auth/usecase"
	candidateadapters "candidate_backend/internal/feature/candidates/adapters"
	candidatehandler "candidate_backend/internal/feature/candidates/transport/handler"
	candidateusecase "candidate_backend/internal/feature/candidates/usecase"
	reportadapters "candidate_backend/internal/feature/report/adapters"
	reporthandler "candidate_backend/internal/feature/report/transport/handler"
	reportusecase "candidate_backend/internal/feature/report/usecase"
	"candidate_backend/internal/feature/report/worker"
	"candidate_backend/internal/platform/db"
	platformhttp "candidate_backend/internal/platform/http"
	platformhandler "candidate_backend/internal/platform/http/handler"
	jwtmw "candidate_backend/internal/platform/jwt"
	"candidate_backend/internal/platform/logging"
	"candidate_backend/internal/platform/password"
	infraredis "candidate_backend/internal/platform/redis"
	"candidate_backend/internal/shared/ratelimiter"
)

const (
	shutdownTimeout = 10 * time.Second
	memoryQueueSize = 64
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.OpenDB(cfg.Database(), di.Models()...)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis()); err != nil {
			slog.Warn("Redis unavailable, reports run in-process", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}
	reportQueue := di.NewReportQueue(rdb, cfg.ReportQueueKey, memoryQueueSize)

	// Repository
	userRepo := authadapters.NewUserRepository(gdb)
	candidateRepo := candidateadapters.NewCandidateRepository(gdb)
	skillRepo := candidateadapters.NewSkillRepository(gdb)

	// Usecase
	tokens, err := jwtmw.NewGenerator(jwtmw.Config{
		Secret:     cfg.JWTSecret,
		Algorithm:  cfg.JWTAlgorithm,
		Expiration: cfg.AccessTokenTTL,
	})
	if err != nil {
		slog.Error("failed to create token generator", "error", err)
		os.Exit(1)
	}
	authUC := authusecase.NewAuthUsecase(userRepo, password.NewHasher(cfg.BcryptCost), tokens)
	candidateUC := candidateusecase.NewCandidateUsecase(candidateRepo)
	skillUC := candidateusecase.NewSkillUsecase(skillRepo, candidateRepo)
	dispatcher := reportusecase.NewDispatcher(reportQueue)

	// Handler
	handlers := router.Handlers{
		Health:     platformhandler.NewHealthHandler(di.NewHealthChecks(gdb, rdb)),
		Auth:       authhandler.NewAuthHandler(authUC),
		Candidates: candidatehandler.NewCandidateHandler(candidateUC),
		Skills:     candidatehandler.NewSkillHandler(skillUC),
		Report:     reporthandler.NewReportHandler(dispatcher),
	}
	engine, err := router.NewRouter(handlers, authUC, ratelimiter.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow))
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	// Without a broker no separate worker can see the queue, so drain it here.
	workerDone := make(chan struct{})
	if rdb == nil {
		w := worker.New(reportQueue, worker.Config{
			Concurrency: cfg.WorkerConcurrency,
			MaxAttempts: cfg.JobMaxAttempts,
			Backoff:     cfg.JobRetryBackoff,
		})
		job := reportusecase.NewReportJob(candidateRepo, reportadapters.NewFileStore(cfg.ReportOutputDir))
		w.Handle(reportusecase.JobCandidatesReport, job.Handle)
		go func() {
			defer close(workerDone)
			if err := w.Run(ctx); err != nil {
				slog.Error("in-process worker stopped", "error", err)
			}
		}()
	} else {
		close(workerDone)
	}

	srv := platformhttp.NewServer(":"+cfg.Port, engine)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	<-workerDone

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
