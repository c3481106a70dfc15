// Package main provides the entrypoint for the FloodWatch refresh worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/floodwatch/floodwatch/internal/config"
	"github.com/floodwatch/floodwatch/internal/rain"
	rainthaiwater "github.com/floodwatch/floodwatch/internal/rain/thaiwater"
	"github.com/floodwatch/floodwatch/internal/water"
	waterthaiwater "github.com/floodwatch/floodwatch/internal/water/thaiwater"
	"github.com/floodwatch/floodwatch/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "floodwatch-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting FloodWatch worker")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry feed services, shared by the ticker loop and the
	// Pub/Sub handler.
	waterService := water.NewService(water.ServiceConfig{
		Provider: waterthaiwater.NewClient(waterthaiwater.ClientConfig{
			BaseURL: cfg.ThaiWaterBaseURL,
		}),
		Logger:   log,
		CacheTTL: cfg.WaterCacheTTL,
	})
	rainService := rain.NewService(rain.ServiceConfig{
		Provider: rainthaiwater.NewClient(rainthaiwater.ClientConfig{
			BaseURL: cfg.ThaiWaterBaseURL,
		}),
		Logger:   log,
		CacheTTL: cfg.RainCacheTTL,
	})

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Logger:       log,
		WaterService: waterService,
		RainService:  rainService,
	})

	// Health endpoint for the orchestrator.
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Interval-driven refresh loop. An initial run warms the caches before
	// the first tick.
	go func() {
		refreshJob.Run(ctx)

		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				refreshJob.Run(ctx)
			}
		}
	}()

	// Optional Pub/Sub trigger for on-demand refreshes.
	var pubsubHandler *worker.PubSubHandler
	if cfg.PubSubProjectID != "" {
		pubsubHandler, err = worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        cfg.PubSubProjectID,
			SubscriptionName: cfg.PubSubSubscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}

		go func() {
			if err := pubsubHandler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
		log.Info().
			Str("subscription", cfg.PubSubSubscription).
			Msg("pubsub trigger enabled")
	} else {
		log.Info().Msg("pubsub disabled, running on interval only")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	if pubsubHandler != nil {
		if err := pubsubHandler.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close pubsub client")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
