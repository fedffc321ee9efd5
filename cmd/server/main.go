package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aguacontrol/internal/config"
	"aguacontrol/internal/infra"
	"aguacontrol/internal/repository"
	"aguacontrol/internal/router"
	"aguacontrol/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ledger, err := newLedger(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.LedgerBackend).Msg("failed to open ledger")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	r, reporteWorker := router.New(cfg, ledger, rdb)

	// Weekly report e-mails go through the Redis queue when both Redis and
	// SMTP are configured; otherwise the router runs them in-process.
	if rdb != nil && reporteWorker != nil {
		worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
			worker.JobReporteSemanal: reporteWorker,
		})
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("ledger", cfg.LedgerBackend).Msgf("Agua Control backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// newLedger opens the configured store behind a circuit breaker.
func newLedger(ctx context.Context, cfg *config.Config) (repository.LedgerRepository, error) {
	cb := infra.NewBreaker(infra.DefaultBreakerConfig())
	switch cfg.LedgerBackend {
	case "postgres":
		db, err := infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return repository.NewGormLedger(db, cb), nil
	default:
		svc, err := infra.NewSheets(ctx, cfg.SheetsCredentialsFile)
		if err != nil {
			return nil, err
		}
		ranges := repository.SheetRanges{
			Catalogo: cfg.SheetsCatalogoRange,
			Cargas:   cfg.SheetsCargasRange,
			Ventas:   cfg.SheetsVentasRange,
		}
		return repository.NewSheetsLedger(repository.NewSheetValues(svc, cfg.SheetsSpreadsheetID), ranges, cb), nil
	}
}
