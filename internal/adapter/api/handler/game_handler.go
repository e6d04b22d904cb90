package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/user/highscores-api/internal/adapter/api/middleware"
	"github.com/user/highscores-api/internal/domain"
	"github.com/user/highscores-api/internal/usecase"
)

// GameHandler serves the tenant registry routes.
type GameHandler struct {
	registry *usecase.Registry
	ledger   *usecase.Ledger
	guard    *usecase.Guard
	logger   *slog.Logger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(registry *usecase.Registry, ledger *usecase.Ledger, guard *usecase.Guard, logger *slog.Logger) *GameHandler {
	return &GameHandler{registry: registry, ledger: ledger, guard: guard, logger: logger}
}

type registerRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type registerResponse struct {
	PublicID  string    `json:"public_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}

type gameInfo struct {
	PublicID  string    `json:"public_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Create registers a new game. The response is the only place the api_key
// ever appears; it cannot be retrieved again.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, domain.NewValidationError("body", "invalid JSON"))
		return
	}
	if req.Name == nil {
		respondError(w, h.logger, domain.NewValidationError("name", "is required"))
		return
	}
	if req.Email == nil {
		respondError(w, h.logger, domain.NewValidationError("email", "is required"))
		return
	}

	name, err := validateGameName(*req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	email, err := validateEmail(*req.Email)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	game, err := h.registry.Register(r.Context(), name, email)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, registerResponse{
		PublicID:  game.PublicID,
		Name:      game.Name,
		Email:     game.Email,
		APIKey:    game.APIKey,
		CreatedAt: game.CreatedAt,
	})
}

// List returns all games, oldest first, secrets excluded. Admin only.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.registry.ListAll(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := make([]gameInfo, 0, len(games))
	for _, g := range games {
		out = append(out, gameInfo{PublicID: g.PublicID, Name: g.Name, CreatedAt: g.CreatedAt})
	}
	respondJSON(w, http.StatusOK, out)
}

// Get returns one game's public details. Admin only.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	game, err := h.registry.Lookup(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, gameInfo{PublicID: game.PublicID, Name: game.Name, CreatedAt: game.CreatedAt})
}

// Delete removes a game and all of its highscores. Owner key or admin token.
// An unknown game is not found before any authorization decision is made.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	game, err := h.registry.Lookup(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.guard.Authorize(game, r.Header.Get(middleware.APIKeyHeader), r.Header.Get(middleware.AdminTokenHeader)); err != nil {
		respondError(w, h.logger, err)
		return
	}

	if err := h.ledger.DeleteGame(r.Context(), game); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
