package utils

import (
	"testing"
	"time"

	"harborview/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("st1", "ana@harborview.example", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "st1", sub)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("st1", "ana@harborview.example", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ExtractIDFromToken("not-a-token")
	assert.Error(t, err)
}

func TestConfigSecretUsedAtCallTime(t *testing.T) {
	prev := config.AppConfig.JWTSecret
	t.Cleanup(func() { config.AppConfig.JWTSecret = prev })

	config.AppConfig.JWTSecret = "first-secret"
	token, err := GenerateToken("st1", "ana@harborview.example", time.Hour)
	require.NoError(t, err)

	sub, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "st1", sub)

	// Rotating the configured secret invalidates tokens signed under the
	// old one, proving the key is read from config per call.
	config.AppConfig.JWTSecret = "rotated-secret"
	_, err = ExtractIDFromToken(token)
	assert.Error(t, err)
}
