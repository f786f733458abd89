package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/handler"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/config"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/services"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/logging"
)

func main() {
	cfg := config.Load()
	if err := logging.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Repository
	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	// Initialize Service
	service := services.NewCardService(repo, cfg.DefaultStoreID)
	if err := service.Load(ctx); err != nil {
		log.Fatalf("Failed to load cards: %v", err)
	}
	log.Infof("Loaded %d cards, store id %s", len(service.Cards()), service.StoreID())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(cfg, service),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("Server shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
