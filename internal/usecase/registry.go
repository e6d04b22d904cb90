package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/user/highscores-api/internal/adapter/metrics"
	"github.com/user/highscores-api/internal/domain"
	"github.com/user/highscores-api/internal/pkg/token"
)

// Registry handles game registration and lookup. Games are created once and
// never updated; the api_key is generated here and returned exactly once.
type Registry struct {
	games   domain.GameRepository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewRegistry creates a new Registry use case.
func NewRegistry(games domain.GameRepository, logger *slog.Logger, m *metrics.Metrics) *Registry {
	return &Registry{games: games, logger: logger, metrics: m}
}

// Register allocates a new game with fresh public_id and api_key. The
// returned Game is the only place the api_key ever appears; a token collision
// surfaces as ErrConflict and is never retried.
func (uc *Registry) Register(ctx context.Context, name, email string) (*domain.Game, error) {
	apiKey, err := token.NewAPIKey()
	if err != nil {
		return nil, err
	}

	game := &domain.Game{
		PublicID:  token.NewPublicID(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		APIKey:    apiKey,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.games.Create(ctx, game); err != nil {
		uc.logger.Error("failed to register game", "error", err)
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.GamesCreated.Inc()
	}
	uc.logger.Info("game registered", "public_id", game.PublicID)
	return game, nil
}

// Lookup resolves a game by public id. Every other operation resolves the
// tenant through here before doing anything else.
func (uc *Registry) Lookup(ctx context.Context, publicID string) (*domain.Game, error) {
	return uc.games.FindByPublicID(ctx, publicID)
}

// ListAll returns all registered games, oldest first. Admin-only at the API
// layer; callers must not expose api_key from the result.
func (uc *Registry) ListAll(ctx context.Context) ([]domain.Game, error) {
	return uc.games.ListAll(ctx)
}
