package handler

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/user/highscores-api/internal/domain"
)

// Input validation happens here, before anything touches the store.
// Length bounds count characters, not bytes.

func validateGameName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", domain.NewValidationError("name",
			fmt.Sprintf("must be at most %d characters", domain.MaxNameLength))
	}
	return name, nil
}

func validateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.NewValidationError("email", "must not be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.NewValidationError("email", "must be a valid email address")
	}
	return email, nil
}

func validatePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("player_name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > domain.MaxPlayerNameLength {
		return "", domain.NewValidationError("player_name",
			fmt.Sprintf("must be at most %d characters", domain.MaxPlayerNameLength))
	}
	return name, nil
}

func validateScore(raw *json.Number) (int64, error) {
	if raw == nil {
		return 0, domain.NewValidationError("score", "is required")
	}
	score, err := raw.Int64()
	if err != nil {
		return 0, domain.NewValidationError("score", "must be an integer")
	}
	if score < 0 || score > domain.MaxScore {
		return 0, domain.NewValidationError("score",
			fmt.Sprintf("must be between 0 and %d", domain.MaxScore))
	}
	return score, nil
}
