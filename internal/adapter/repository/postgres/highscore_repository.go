package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/user/highscores-api/internal/domain"
)

// HighscoreRepository implements domain.HighscoreRepository using PostgreSQL.
type HighscoreRepository struct {
	db *sql.DB
}

// NewHighscoreRepository creates a new PostgreSQL highscore repository.
func NewHighscoreRepository(db *sql.DB) *HighscoreRepository {
	return &HighscoreRepository{db: db}
}

func (r *HighscoreRepository) Insert(ctx context.Context, hs *domain.Highscore) error {
	query := `
        INSERT INTO highscores (game_id, player_name, score, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.db.QueryRowContext(ctx, query,
		hs.GameID,
		hs.PlayerName,
		hs.Score,
		hs.CreatedAt,
	).Scan(&hs.ID)
	if err != nil {
		return fmt.Errorf("insert highscore: %w", err)
	}
	return nil
}

// TopN ranks by score descending; ties go to the earlier submission.
func (r *HighscoreRepository) TopN(ctx context.Context, gameID int64, limit int) ([]domain.Highscore, error) {
	query := `
        SELECT id, game_id, player_name, score, created_at
        FROM highscores
        WHERE game_id = $1
        ORDER BY score DESC, created_at ASC
        LIMIT $2
    `
	rows, err := r.db.QueryContext(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	return scanHighscores(rows)
}

func (r *HighscoreRepository) DeleteByGame(ctx context.Context, gameID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM highscores WHERE game_id = $1`, gameID)
	if err != nil {
		return 0, fmt.Errorf("delete highscores: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete highscores: %w", err)
	}
	return deleted, nil
}

func scanHighscores(rows *sql.Rows) ([]domain.Highscore, error) {
	var scores []domain.Highscore
	for rows.Next() {
		var hs domain.Highscore
		if err := rows.Scan(
			&hs.ID,
			&hs.GameID,
			&hs.PlayerName,
			&hs.Score,
			&hs.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan highscore: %w", err)
		}
		scores = append(scores, hs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate highscores: %w", err)
	}
	return scores, nil
}

var _ domain.HighscoreRepository = (*HighscoreRepository)(nil)
