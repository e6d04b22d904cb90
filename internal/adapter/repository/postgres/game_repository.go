package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/highscores-api/internal/domain"
)

// GameRepository implements domain.GameRepository using PostgreSQL.
type GameRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewGameRepository creates a new PostgreSQL game repository.
func NewGameRepository(db *sql.DB, logger *slog.Logger) *GameRepository {
	return &GameRepository{db: db, logger: logger}
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) error {
	query := `
        INSERT INTO games (public_id, name, email, api_key, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := r.db.QueryRowContext(ctx, query,
		game.PublicID,
		game.Name,
		game.Email,
		game.APIKey,
		game.CreatedAt,
	).Scan(&game.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error("token collision on game insert", "public_id", game.PublicID)
			return fmt.Errorf("insert game: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

func (r *GameRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Game, error) {
	query := `
        SELECT id, public_id, name, email, api_key, created_at
        FROM games
        WHERE public_id = $1
    `
	var game domain.Game
	err := r.db.QueryRowContext(ctx, query, publicID).Scan(
		&game.ID,
		&game.PublicID,
		&game.Name,
		&game.Email,
		&game.APIKey,
		&game.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find game by public id: %w", err)
	}
	return &game, nil
}

func (r *GameRepository) ListAll(ctx context.Context) ([]domain.Game, error) {
	query := `
        SELECT id, public_id, name, email, api_key, created_at
        FROM games
        ORDER BY created_at ASC
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var game domain.Game
		if err := rows.Scan(
			&game.ID,
			&game.PublicID,
			&game.Name,
			&game.Email,
			&game.APIKey,
			&game.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

// DeleteCascade removes the game's highscores and then the game itself inside
// one transaction. Either both deletions commit or neither is visible.
func (r *GameRepository) DeleteCascade(ctx context.Context, gameID int64) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cascade delete: %w", err)
	}
	defer txn.Rollback() // Rollback is a no-op if Commit() is called

	if _, err := txn.ExecContext(ctx, `DELETE FROM highscores WHERE game_id = $1`, gameID); err != nil {
		return fmt.Errorf("delete highscores: %w", err)
	}

	res, err := txn.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	return txn.Commit()
}

var _ domain.GameRepository = (*GameRepository)(nil)
