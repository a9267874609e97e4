package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateTokenSecret returns a URL-safe random signing secret with 256 bits
// of entropy, used when no secret is configured. Tokens signed with a
// generated secret do not survive a restart.
func GenerateTokenSecret() (string, error) {
	const numBytes = 32 // 256 bits
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
