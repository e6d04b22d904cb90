package domain

import "context"

// GameRepository defines the persistence interface for the tenant registry.
type GameRepository interface {
	// Create inserts a new game and fills in its internal id. A collision
	// on public_id or api_key surfaces as ErrConflict.
	Create(ctx context.Context, game *Game) error

	// FindByPublicID resolves a game by its public identifier. Returns
	// ErrNotFound when no such game exists; this is a single indexed lookup.
	FindByPublicID(ctx context.Context, publicID string) (*Game, error)

	// ListAll returns every registered game ordered by created_at ascending.
	ListAll(ctx context.Context) ([]Game, error)

	// DeleteCascade removes a game and all of its highscores inside a
	// single transaction. Returns ErrNotFound if the game does not exist.
	DeleteCascade(ctx context.Context, gameID int64) error
}

// HighscoreRepository defines the persistence interface for the score ledger.
type HighscoreRepository interface {
	// Insert stores a new highscore row and fills in its internal id.
	// Every submission is a new row; there is no upsert.
	Insert(ctx context.Context, hs *Highscore) error

	// TopN returns up to limit highscores for a game, ordered by score
	// descending with ties broken by created_at ascending.
	TopN(ctx context.Context, gameID int64, limit int) ([]Highscore, error)

	// DeleteByGame removes every highscore owned by a game and returns the
	// number of rows removed. Deleting zero rows is not an error.
	DeleteByGame(ctx context.Context, gameID int64) (int64, error)
}
