package middleware

import (
	"log/slog"
	"net/http"

	"github.com/user/highscores-api/internal/usecase"
)

// RequireAdmin guards registry-wide administrative routes. There is no
// ownership concept here; only the process-wide admin token is accepted.
func RequireAdmin(guard *usecase.Guard, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := guard.RequireAdmin(r.Header.Get(AdminTokenHeader)); err != nil {
				logger.Warn("admin token rejected", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"invalid admin token"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
