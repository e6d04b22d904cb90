package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/highscores-api/internal/adapter/api/handler"
	"github.com/user/highscores-api/internal/adapter/api/middleware"
	"github.com/user/highscores-api/internal/adapter/metrics"
	"github.com/user/highscores-api/internal/usecase"
)

// Version is reported by the health check.
const Version = "1.0.0"

// NewRouter wires the public HTTP surface of the highscores service.
func NewRouter(
	logger *slog.Logger,
	m *metrics.Metrics,
	registry *usecase.Registry,
	ledger *usecase.Ledger,
	guard *usecase.Guard,
) http.Handler {
	games := handler.NewGameHandler(registry, ledger, guard, logger)
	scores := handler.NewScoreHandler(registry, ledger, guard, logger)

	r := chi.NewRouter()
	r.Use(middleware.CORS())
	r.Use(middleware.Observe(logger, m))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","version":"` + Version + `"}`))
	})

	// Public
	r.Post("/games", games.Create)
	r.Post("/games/{publicID}/highscores", scores.Submit)
	r.Get("/games/{publicID}/highscores", scores.Top)

	// Owner or admin
	r.Delete("/games/{publicID}/highscores", scores.Reset)
	r.Delete("/games/{publicID}", games.Delete)

	// Admin only
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(guard, logger))
		r.Get("/games", games.List)
		r.Get("/games/{publicID}", games.Get)
	})

	return r
}
