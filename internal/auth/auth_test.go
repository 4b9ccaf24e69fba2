package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/goshop/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret", TTLHours: 1}

	token, err := GenerateToken(cfg, 42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(&config.JWTConfig{Secret: "secret-a"}, 1, "bob")
	require.NoError(t, err)

	_, err = ParseToken(&config.JWTConfig{Secret: "secret-b"}, token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(&config.JWTConfig{Secret: "secret"}, "not-a-jwt")
	assert.Error(t, err)
}

func TestHashRingStableOwner(t *testing.T) {
	ring := NewHashRing([]string{"node-1", "node-2", "node-3"}, 50)

	first := ring.Owner("some-token")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ring.Owner("some-token"))
	}
	assert.Contains(t, []string{"node-1", "node-2", "node-3"}, first)
}

func TestHashRingEmptyFallsBackToDefault(t *testing.T) {
	ring := NewHashRing(nil, 0)
	assert.Equal(t, "auth-node-default", ring.Owner("anything"))
}

func TestHashRingAddIsIdempotent(t *testing.T) {
	ring := NewHashRing([]string{"node-1"}, 10)
	before := ring.Owner("key")
	ring.Add("node-1")
	assert.Equal(t, before, ring.Owner("key"))
}
