package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellerhub/internal/config"
	"sellerhub/internal/infra"
	"sellerhub/internal/repository"
	"sellerhub/internal/router"
	"sellerhub/internal/service"
	"sellerhub/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker handlers are wired here (composition root) so that the pool has
	// full access to all infrastructure dependencies.
	mailer := infra.NewMailer(cfg)
	mediaCB := infra.NewBreaker(infra.DefaultBreakerConfig())
	dispatcher := worker.NewDispatcher(rdb)

	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	analyticsSvc := service.NewAnalyticsService(storeRepo, productRepo, saleRepo, reviewRepo)

	workerHandlers := &worker.WorkerHandlers{
		Report: worker.NewReportWorker(analyticsSvc, storeRepo, mailer, cfg.ReportStoragePath),
		Email:  worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	// Plan-expiry notices run on their own schedule.
	worker.StartPlanExpiryCron(ctx, worker.ExpiryCronConfig{
		Stores:     storeRepo,
		RDB:        rdb,
		Dispatcher: dispatcher,
	})

	r := router.New(cfg, db, rdb, mediaCB, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("sellerhub backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
