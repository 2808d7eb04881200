package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// OneTimeTokenLength is the length of generated tokens in bytes (32 bytes = 64 hex chars)
const OneTimeTokenLength = 32

// GenerateOneTimeToken creates a cryptographically secure random token for
// email verification and password reset links.
func GenerateOneTimeToken() (string, error) {
	bytes := make([]byte, OneTimeTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
