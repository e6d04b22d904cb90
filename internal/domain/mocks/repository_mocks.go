package mocks

import (
	"context"
	"sync"

	"github.com/user/highscores-api/internal/domain"
)

// MockGameRepository is an in-memory implementation of domain.GameRepository
// for testing.
type MockGameRepository struct {
	mu     sync.Mutex
	nextID int64
	Games  []domain.Game

	CreateErr error
	FindErr   error
	ListErr   error
	DeleteErr error
}

func (m *MockGameRepository) Create(ctx context.Context, game *domain.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return m.CreateErr
	}
	for _, g := range m.Games {
		if g.PublicID == game.PublicID || g.APIKey == game.APIKey {
			return domain.ErrConflict
		}
	}
	m.nextID++
	game.ID = m.nextID
	m.Games = append(m.Games, *game)
	return nil
}

func (m *MockGameRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for i := range m.Games {
		if m.Games[i].PublicID == publicID {
			g := m.Games[i]
			return &g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockGameRepository) ListAll(ctx context.Context) ([]domain.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]domain.Game, len(m.Games))
	copy(out, m.Games)
	return out, nil
}

func (m *MockGameRepository) DeleteCascade(ctx context.Context, gameID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i := range m.Games {
		if m.Games[i].ID == gameID {
			m.Games = append(m.Games[:i], m.Games[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// MockHighscoreRepository is an in-memory implementation of
// domain.HighscoreRepository for testing. It preserves insertion order;
// TopN sorts by the ledger's ranking rule.
type MockHighscoreRepository struct {
	mu     sync.Mutex
	nextID int64
	Scores []domain.Highscore

	InsertErr error
	TopErr    error
	DeleteErr error
}

func (m *MockHighscoreRepository) Insert(ctx context.Context, hs *domain.Highscore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return m.InsertErr
	}
	m.nextID++
	hs.ID = m.nextID
	m.Scores = append(m.Scores, *hs)
	return nil
}

func (m *MockHighscoreRepository) TopN(ctx context.Context, gameID int64, limit int) ([]domain.Highscore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TopErr != nil {
		return nil, m.TopErr
	}
	var ranked []domain.Highscore
	for _, hs := range m.Scores {
		if hs.GameID == gameID {
			ranked = append(ranked, hs)
		}
	}
	// score desc, created_at asc; stable insertion sort is plenty here
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0; j-- {
			a, b := ranked[j-1], ranked[j]
			if b.Score > a.Score || (b.Score == a.Score && b.CreatedAt.Before(a.CreatedAt)) {
				ranked[j-1], ranked[j] = b, a
			}
		}
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (m *MockHighscoreRepository) DeleteByGame(ctx context.Context, gameID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return 0, m.DeleteErr
	}
	var kept []domain.Highscore
	var deleted int64
	for _, hs := range m.Scores {
		if hs.GameID == gameID {
			deleted++
			continue
		}
		kept = append(kept, hs)
	}
	m.Scores = kept
	return deleted, nil
}
