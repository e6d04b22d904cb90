package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/highscores-api/internal/domain"
	"github.com/user/highscores-api/internal/domain/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistry_Register(t *testing.T) {
	t.Run("allocates fresh tokens and normalizes input", func(t *testing.T) {
		repo := &mocks.MockGameRepository{}
		uc := NewRegistry(repo, discardLogger(), nil)

		game, err := uc.Register(context.Background(), "  Space Blasters  ", "Owner@Example.COM")
		require.NoError(t, err)

		assert.Equal(t, "Space Blasters", game.Name)
		assert.Equal(t, "owner@example.com", game.Email)
		assert.True(t, strings.HasPrefix(game.PublicID, "g_"))
		assert.True(t, strings.HasPrefix(game.APIKey, "sk_"))
		assert.False(t, game.CreatedAt.IsZero())
		assert.NotZero(t, game.ID, "repository assigns the internal id")
	})

	t.Run("distinct registrations get distinct tokens", func(t *testing.T) {
		repo := &mocks.MockGameRepository{}
		uc := NewRegistry(repo, discardLogger(), nil)

		a, err := uc.Register(context.Background(), "One", "a@example.com")
		require.NoError(t, err)
		b, err := uc.Register(context.Background(), "Two", "b@example.com")
		require.NoError(t, err)

		assert.NotEqual(t, a.PublicID, b.PublicID)
		assert.NotEqual(t, a.APIKey, b.APIKey)
	})

	t.Run("conflict is surfaced, not retried", func(t *testing.T) {
		repo := &mocks.MockGameRepository{CreateErr: domain.ErrConflict}
		uc := NewRegistry(repo, discardLogger(), nil)

		_, err := uc.Register(context.Background(), "Game", "a@example.com")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Empty(t, repo.Games, "no partial state on conflict")
	})
}

func TestRegistry_Lookup(t *testing.T) {
	repo := &mocks.MockGameRepository{}
	uc := NewRegistry(repo, discardLogger(), nil)

	game, err := uc.Register(context.Background(), "Game", "a@example.com")
	require.NoError(t, err)

	found, err := uc.Lookup(context.Background(), game.PublicID)
	require.NoError(t, err)
	assert.Equal(t, game.ID, found.ID)

	_, err = uc.Lookup(context.Background(), "g_unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistry_ListAll(t *testing.T) {
	repo := &mocks.MockGameRepository{}
	uc := NewRegistry(repo, discardLogger(), nil)

	_, err := uc.Register(context.Background(), "One", "a@example.com")
	require.NoError(t, err)
	_, err = uc.Register(context.Background(), "Two", "b@example.com")
	require.NoError(t, err)

	all, err := uc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
