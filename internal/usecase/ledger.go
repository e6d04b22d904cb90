package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/user/highscores-api/internal/adapter/metrics"
	"github.com/user/highscores-api/internal/domain"
)

// Ledger handles score submission, ranked retrieval, and bulk deletion.
// Callers resolve the owning game before invoking any Ledger operation.
type Ledger struct {
	scores  domain.HighscoreRepository
	games   domain.GameRepository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewLedger creates a new Ledger use case.
func NewLedger(scores domain.HighscoreRepository, games domain.GameRepository, logger *slog.Logger, m *metrics.Metrics) *Ledger {
	return &Ledger{scores: scores, games: games, logger: logger, metrics: m}
}

// Submit records a new highscore for the game. Every submission is a new
// row; duplicate (player, score) pairs are kept.
func (uc *Ledger) Submit(ctx context.Context, game *domain.Game, playerName string, score int64) (*domain.Highscore, error) {
	hs := &domain.Highscore{
		GameID:     game.ID,
		PlayerName: strings.TrimSpace(playerName),
		Score:      score,
		CreatedAt:  time.Now().UTC(),
	}
	if err := uc.scores.Insert(ctx, hs); err != nil {
		uc.logger.Error("failed to submit highscore", "error", err, "public_id", game.PublicID)
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.ScoresSubmitted.Inc()
	}
	return hs, nil
}

// TopN returns up to limit highscores ranked by score descending, ties
// broken by earlier submission. The limit is revalidated here even though
// the API layer bounds it first; out-of-range values are rejected outright.
func (uc *Ledger) TopN(ctx context.Context, game *domain.Game, limit int) ([]domain.Highscore, error) {
	if limit < domain.MinTopLimit || limit > domain.MaxTopLimit {
		return nil, domain.NewValidationError("limit",
			fmt.Sprintf("must be between %d and %d", domain.MinTopLimit, domain.MaxTopLimit))
	}
	return uc.scores.TopN(ctx, game.ID, limit)
}

// DeleteAll removes every highscore owned by the game and returns the count.
// Idempotent: zero entries deletes cleanly with a zero count.
func (uc *Ledger) DeleteAll(ctx context.Context, game *domain.Game) (int64, error) {
	deleted, err := uc.scores.DeleteByGame(ctx, game.ID)
	if err != nil {
		uc.logger.Error("failed to delete highscores", "error", err, "public_id", game.PublicID)
		return 0, err
	}
	if uc.metrics != nil {
		uc.metrics.ScoresDeleted.Add(float64(deleted))
	}
	uc.logger.Info("highscores reset", "public_id", game.PublicID, "deleted", deleted)
	return deleted, nil
}

// DeleteGame removes the game and all of its highscores atomically.
func (uc *Ledger) DeleteGame(ctx context.Context, game *domain.Game) error {
	if err := uc.games.DeleteCascade(ctx, game.ID); err != nil {
		uc.logger.Error("failed to delete game", "error", err, "public_id", game.PublicID)
		return err
	}
	if uc.metrics != nil {
		uc.metrics.GamesDeleted.Inc()
	}
	uc.logger.Info("game deleted", "public_id", game.PublicID)
	return nil
}
