// Package token generates the opaque public identifiers and secret API keys
// handed out at game registration. Both carry enough entropy that a collision
// is treated as a hard constraint violation by the store, never retried.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

const (
	publicIDPrefix = "g_"
	apiKeyPrefix   = "sk_"

	publicIDHexLen = 16
	apiKeyBytes    = 32
)

// NewPublicID returns a fresh client-facing game identifier: a fixed prefix
// followed by 16 hex characters of a random UUID.
func NewPublicID() string {
	u := uuid.New()
	return publicIDPrefix + hex.EncodeToString(u[:])[:publicIDHexLen]
}

// NewAPIKey returns a fresh high-entropy secret key from a cryptographically
// secure source.
func NewAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return apiKeyPrefix + base64.RawURLEncoding.EncodeToString(buf), nil
}
