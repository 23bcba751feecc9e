package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// IDGenerator produces opaque transfer identifiers. The create handler
// depends on this capability rather than reaching for a random source
// directly.
type IDGenerator interface {
	NewID() (string, error)
}

// SecureTokenGenerator draws fixed-length URL-safe tokens from crypto/rand.
// The zero value yields 16 random bytes per token (22 base64url characters).
type SecureTokenGenerator struct {
	Length int // random bytes per token
}

func (g SecureTokenGenerator) NewID() (string, error) {
	n := g.Length
	if n <= 0 {
		n = 16
	}
	return GenerateSecureToken(n)
}

// GenerateSecureToken creates a cryptographically secure random token.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
