package handler

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/handler"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/config"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	ctx := context.Background()

	// Note: On Vercel the local sqlite file is ephemeral; use a libsql:// DATABASE_URL or STORAGE_BACKEND=s3
	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		panic(err)
	}

	service := services.NewCardService(repo, cfg.DefaultStoreID)
	if err := service.Load(ctx); err != nil {
		log.Errorf("loading cards: %v", err)
	}
	mux = handler.NewRouter(cfg, service)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
