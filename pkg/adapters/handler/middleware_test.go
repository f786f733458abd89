package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/config"
)

func TestMiddlewareChain(t *testing.T) {
	cfg := &config.Config{
		AllowedOrigins: []string{"https://deals.example"},
		RateLimit:      2,
	}
	mw := NewMiddleware(cfg)
	handler := mw.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		origin         string
		expectedStatus int
		expectedAllow  string
	}{
		{
			name:           "Allowed Origin",
			origin:         "https://deals.example",
			expectedStatus: http.StatusOK,
			expectedAllow:  "https://deals.example",
		},
		{
			name:           "Unknown Origin",
			origin:         "https://evil.example",
			expectedStatus: http.StatusOK,
			expectedAllow:  "",
		},
		{
			name:           "Rate Limited",
			origin:         "https://deals.example",
			expectedStatus: http.StatusTooManyRequests,
			expectedAllow:  "https://deals.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/cards", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			req.Header.Set("Origin", tt.origin)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if status := rr.Code; status != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v",
					status, tt.expectedStatus)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.expectedAllow {
				t.Errorf("wrong Access-Control-Allow-Origin: got %q want %q", got, tt.expectedAllow)
			}
		})
	}
}

func TestRateLimitDisabled(t *testing.T) {
	mw := NewMiddleware(&config.Config{RateLimit: 0})
	handler := mw.RateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, rr.Code)
		}
	}
}

func TestRecoverer(t *testing.T) {
	mw := NewMiddleware(&config.Config{})
	handler := mw.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("got %d want 500", rr.Code)
	}
}
