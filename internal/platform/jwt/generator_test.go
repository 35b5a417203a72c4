package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GenerateToken(t *testing.T) {
	t.Run("token carries the identity claims", func(t *testing.T) {
		g := NewGenerator("test-secret")

		signed, err := g.GenerateToken(42, "alice", "session-123", time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, signed)

		token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, float64(42), claims["sub"])
		assert.Equal(t, "alice", claims["name"])
		assert.Equal(t, "session-123", claims["sid"])
	})

	t.Run("expiry follows the requested ttl", func(t *testing.T) {
		g := NewGenerator("test-secret")

		signed, err := g.GenerateToken(42, "alice", "session-123", time.Hour)
		require.NoError(t, err)

		token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)

		claims := token.Claims.(jwt.MapClaims)
		exp := int64(claims["exp"].(float64))
		iat := int64(claims["iat"].(float64))
		assert.Equal(t, int64(time.Hour/time.Second), exp-iat)
		assert.WithinDuration(t, time.Now(), time.Unix(iat, 0), 5*time.Second)
	})

	t.Run("token is rejected under a different secret", func(t *testing.T) {
		g := NewGenerator("test-secret")

		signed, err := g.GenerateToken(42, "alice", "session-123", time.Hour)
		require.NoError(t, err)

		_, err = jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
			return []byte("another-secret"), nil
		})
		assert.Error(t, err, "the signature must not verify under a different secret")
	})
}
