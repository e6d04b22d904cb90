package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/highscores-api/internal/domain"
)

// Timestamps are stored as integer unix nanoseconds so that ordering
// comparisons in SQL match Go's time ordering exactly.
func toNanos(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

// GameRepository implements domain.GameRepository using SQLite.
type GameRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewGameRepository creates a new SQLite game repository.
func NewGameRepository(db *sql.DB, logger *slog.Logger) *GameRepository {
	return &GameRepository{db: db, logger: logger}
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO games (public_id, name, email, api_key, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		game.PublicID,
		game.Name,
		game.Email,
		game.APIKey,
		toNanos(game.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error("token collision on game insert", "public_id", game.PublicID)
			return fmt.Errorf("insert game: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	game.ID = id
	return nil
}

func (r *GameRepository) FindByPublicID(ctx context.Context, publicID string) (*domain.Game, error) {
	var game domain.Game
	var createdAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, public_id, name, email, api_key, created_at
		 FROM games WHERE public_id = ?`, publicID,
	).Scan(
		&game.ID,
		&game.PublicID,
		&game.Name,
		&game.Email,
		&game.APIKey,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find game by public id: %w", err)
	}
	game.CreatedAt = fromNanos(createdAt)
	return &game, nil
}

func (r *GameRepository) ListAll(ctx context.Context) ([]domain.Game, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, public_id, name, email, api_key, created_at
		 FROM games ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		var game domain.Game
		var createdAt int64
		if err := rows.Scan(
			&game.ID,
			&game.PublicID,
			&game.Name,
			&game.Email,
			&game.APIKey,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		game.CreatedAt = fromNanos(createdAt)
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

func (r *GameRepository) DeleteCascade(ctx context.Context, gameID int64) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cascade delete: %w", err)
	}
	defer txn.Rollback()

	if _, err := txn.ExecContext(ctx, `DELETE FROM highscores WHERE game_id = ?`, gameID); err != nil {
		return fmt.Errorf("delete highscores: %w", err)
	}

	res, err := txn.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, gameID)
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
