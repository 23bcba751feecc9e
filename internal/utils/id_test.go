package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var urlSafe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(16)
	require.NoError(t, err)
	require.Len(t, token, 22) // 16 bytes, base64url without padding
	require.Regexp(t, urlSafe, token)
}

func TestSecureTokenGenerator_DefaultLength(t *testing.T) {
	id, err := SecureTokenGenerator{}.NewID()
	require.NoError(t, err)
	require.Len(t, id, 22)
	require.Regexp(t, urlSafe, id)
}

func TestSecureTokenGenerator_Unique(t *testing.T) {
	gen := SecureTokenGenerator{}
	seen := make(map[string]bool)
	for range 1000 {
		id, err := gen.NewID()
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
