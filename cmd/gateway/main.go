package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/siemlab/console/internal/api/handlers"
	"github.com/siemlab/console/internal/api/router"
	"github.com/siemlab/console/internal/config"
	"github.com/siemlab/console/internal/lab"
	"github.com/siemlab/console/internal/pkg/logger"
	"github.com/siemlab/console/internal/pkg/validator"
	"github.com/siemlab/console/internal/view"
	"github.com/siemlab/console/internal/worker"
	"github.com/siemlab/console/internal/workflow"
	"github.com/siemlab/console/pkg/client"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	backend := client.NewClient(client.Config{
		BaseURL:        cfg.Backend.BaseURL,
		Token:          os.Getenv("BACKEND_TOKEN"),
		Timeout:        cfg.Backend.Timeout,
		RequestsPerSec: cfg.Backend.RequestsPerSec,
		Burst:          cfg.Backend.Burst,
	})

	fetcher := client.NewFetcher(backend)
	store := view.NewStore(fetcher, log)
	controller := workflow.NewController(backend.Incidents(), log)
	engine := lab.NewEngine(backend.Labs(), log)
	v := validator.New()

	h := &router.Handlers{
		Health:   handlers.NewHealthHandler(store),
		View:     handlers.NewViewHandler(store, controller, log),
		Incident: handlers.NewIncidentHandler(controller, v, log),
		Lab:      handlers.NewLabHandler(engine, backend.Labs(), v, log),
		Hunting:  handlers.NewHuntingHandler(backend.Hunting(), v, log),
	}

	var refresher *worker.Refresher
	if cfg.Refresh.Enabled {
		refresher, err = worker.NewRefresher(cfg.Refresh.Schedule, store, controller, log)
		if err != nil {
			log.Fatalf("invalid refresh schedule %q: %v", cfg.Refresh.Schedule, err)
		}
		refresher.Start()
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithFields(map[string]interface{}{
			"addr":    srv.Addr,
			"backend": cfg.Backend.BaseURL,
		}).Info("gateway listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	if refresher != nil {
		refresher.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "forced shutdown")
	}

	log.Info("gateway stopped")
}
