package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/user/highscores-api/internal/adapter/api/middleware"
	"github.com/user/highscores-api/internal/domain"
	"github.com/user/highscores-api/internal/usecase"
)

// ScoreHandler serves the score ledger routes.
type ScoreHandler struct {
	registry *usecase.Registry
	ledger   *usecase.Ledger
	guard    *usecase.Guard
	logger   *slog.Logger
}

// NewScoreHandler creates a new ScoreHandler.
func NewScoreHandler(registry *usecase.Registry, ledger *usecase.Ledger, guard *usecase.Guard, logger *slog.Logger) *ScoreHandler {
	return &ScoreHandler{registry: registry, ledger: ledger, guard: guard, logger: logger}
}

type submitRequest struct {
	PlayerName *string      `json:"player_name"`
	Score      *json.Number `json:"score"`
}

type highscoreOut struct {
	PlayerName string    `json:"player_name"`
	Score      int64     `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

type highscoreList struct {
	GameID     string         `json:"game_id"`
	Highscores []highscoreOut `json:"highscores"`
}

// Submit records a new highscore. Public, but the game must exist: an
// unknown public id is not found regardless of payload validity.
func (h *ScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	game, err := h.registry.Lookup(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req submitRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		respondError(w, h.logger, domain.NewValidationError("body", "invalid JSON"))
		return
	}
	if req.PlayerName == nil {
		respondError(w, h.logger, domain.NewValidationError("player_name", "is required"))
		return
	}
	playerName, err := validatePlayerName(*req.PlayerName)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	score, err := validateScore(req.Score)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	hs, err := h.ledger.Submit(r.Context(), game, playerName, score)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, highscoreOut{
		PlayerName: hs.PlayerName,
		Score:      hs.Score,
		CreatedAt:  hs.CreatedAt,
	})
}

// Top returns the ranked top-N highscores for a game. Public.
func (h *ScoreHandler) Top(w http.ResponseWriter, r *http.Request) {
	game, err := h.registry.Lookup(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	limit := domain.DefaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			respondError(w, h.logger, domain.NewValidationError("limit", "must be an integer"))
			return
		}
	}

	scores, err := h.ledger.TopN(r.Context(), game, limit)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	out := highscoreList{GameID: game.PublicID, Highscores: make([]highscoreOut, 0, len(scores))}
	for _, hs := range scores {
		out.Highscores = append(out.Highscores, highscoreOut{
			PlayerName: hs.PlayerName,
			Score:      hs.Score,
			CreatedAt:  hs.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// Reset deletes every highscore for a game. Owner key or admin token.
func (h *ScoreHandler) Reset(w http.ResponseWriter, r *http.Request) {
	game, err := h.registry.Lookup(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if err := h.guard.Authorize(game, r.Header.Get(middleware.APIKeyHeader), r.Header.Get(middleware.AdminTokenHeader)); err != nil {
		respondError(w, h.logger, err)
		return
	}

	deleted, err := h.ledger.DeleteAll(r.Context(), game)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
}
