package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/config"
)

type Middleware struct {
	allowedOrigins []string
	rateLimit      int
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{
		allowedOrigins: cfg.AllowedOrigins,
		rateLimit:      cfg.RateLimit,
	}
}

// Logger writes one access log line per request
func (m *Middleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log.WithFields(log.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"remote":     r.RemoteAddr,
				"status":     ww.Status(),
				"duration":   time.Since(start),
			}).Info("request")
		}()

		next.ServeHTTP(ww, r)
	})
}

// CORS lets the browser frontend call the API
func (m *Middleware) CORS(next http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: m.allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	}).Handler(next)
}

// RateLimit limits requests per client IP per minute. A non-positive limit
// disables it.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	if m.rateLimit <= 0 {
		return next
	}
	return httprate.LimitByIP(m.rateLimit, time.Minute)(next)
}

// Chain wraps h with the request id, logging, recovery, CORS and rate limit
// middleware, outermost first.
func (m *Middleware) Chain(h http.Handler) http.Handler {
	h = m.RateLimit(h)
	h = m.CORS(h)
	h = middleware.Recoverer(h)
	h = m.Logger(h)
	return middleware.RequestID(h)
}
