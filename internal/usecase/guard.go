package usecase

import (
	"crypto/subtle"

	"github.com/user/highscores-api/internal/domain"
)

// Guard makes the per-request authorization decision. It is pure: no state
// beyond the admin token, which is process configuration fixed at startup.
//
// Tenant resolution happens before authorization, so an unknown game is
// reported as not found rather than forbidden.
type Guard struct {
	adminToken string
}

// NewGuard creates a Guard with the configured admin secret.
func NewGuard(adminToken string) *Guard {
	return &Guard{adminToken: adminToken}
}

func secretsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// RequireAdmin succeeds only on an exact admin token match.
func (g *Guard) RequireAdmin(adminToken string) error {
	if adminToken != "" && secretsEqual(adminToken, g.adminToken) {
		return nil
	}
	return domain.ErrUnauthorized
}

// Authorize succeeds if adminToken matches the configured admin secret, or
// if apiKey matches the game's owner key. The admin check takes precedence;
// both comparisons are constant time.
func (g *Guard) Authorize(game *domain.Game, apiKey, adminToken string) error {
	if adminToken != "" && secretsEqual(adminToken, g.adminToken) {
		return nil
	}
	if apiKey != "" && secretsEqual(apiKey, game.APIKey) {
		return nil
	}
	return domain.ErrForbidden
}
