package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/user/highscores-api/internal/adapter/metrics"
)

// Authentication headers. The API key proves ownership of a single game; the
// admin token proves administrator access across all games.
const (
	APIKeyHeader     = "X-API-Key"
	AdminTokenHeader = "X-Admin-Token"
)

// statusRecorder captures the HTTP status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// Observe logs each request and records request count and latency metrics.
func Observe(logger *slog.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			if m != nil {
				m.HTTPRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
				m.HTTPRequestDuration.WithLabelValues(r.Method).Observe(duration.Seconds())
			}
			logger.Info("handled request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"status", rec.status,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// CORS allows cross-origin calls from anywhere. Games embed the API directly
// in browser-hosted frontends, so the public surface is wide open.
func CORS() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, "+APIKeyHeader+", "+AdminTokenHeader)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
