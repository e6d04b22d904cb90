package domain

import "time"

// Game represents a registered tenant that owns a leaderboard.
type Game struct {
	ID        int64     `json:"-"` // internal row id, never exposed
	PublicID  string    `json:"public_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	APIKey    string    `json:"-"` // secret, only returned once at registration
	CreatedAt time.Time `json:"created_at"`
}

// Highscore is a single submitted score, owned by exactly one Game.
type Highscore struct {
	ID         int64     `json:"-"`
	GameID     int64     `json:"-"`
	PlayerName string    `json:"player_name"`
	Score      int64     `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}

// Limits enforced by the public API before any store access.
const (
	MaxNameLength       = 100
	MaxPlayerNameLength = 32
	MaxScore            = 1_000_000_000
	MinTopLimit         = 1
	MaxTopLimit         = 50
	DefaultTopLimit     = 10
)
