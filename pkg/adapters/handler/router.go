package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/config"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, service ports.CardService) http.Handler {
	h := NewHTTPHandler(service)
	mw := NewMiddleware(cfg)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		res := map[string]string{
			"message": "ok",
		}
		_ = json.NewEncoder(w).Encode(&res)
	})

	mux.HandleFunc("POST /api/v1/links/generate", h.Generate)
	mux.HandleFunc("GET /api/v1/store-id", h.GetStoreID)
	mux.HandleFunc("PUT /api/v1/store-id", h.SetStoreID)

	mux.HandleFunc("GET /api/v1/cards", h.List)
	mux.HandleFunc("POST /api/v1/cards", h.Create)
	mux.HandleFunc("GET /api/v1/cards/{id}", h.Get)
	mux.HandleFunc("GET /api/v1/cards/{id}/edit", h.StartEdit)
	mux.HandleFunc("PUT /api/v1/cards/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/cards/{id}", h.Delete)

	mux.HandleFunc("GET /api/v1/export", h.Export)
	mux.HandleFunc("POST /api/v1/import", h.Import)

	return mw.Chain(mux)
}
