package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/user/highscores-api/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the domain error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is an internal error: logged in full,
// returned opaque.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "game not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid admin token"})
	case errors.Is(err, domain.ErrForbidden):
		respondJSON(w, http.StatusForbidden, errorResponse{
			Error: "provide a valid X-API-Key (game owner) or X-Admin-Token (admin)",
		})
	case errors.As(err, &ve):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ve.Error()})
	default:
		logger.Error("internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
