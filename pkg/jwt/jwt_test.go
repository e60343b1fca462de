package jwt

import (
	"testing"
	"time"

	"fittrack/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(secret string, expire time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     secret,
		Issuer:     "fittrack-test",
		ExpireTime: expire,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newService("test-secret", time.Hour)

	token, err := svc.GenerateToken("42", map[string]interface{}{"username": "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Data["username"])
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	svc := newService("test-secret", time.Hour)
	_, err := svc.GenerateToken("", nil)
	assert.Error(t, err)
}

func TestValidateTokenFailures(t *testing.T) {
	svc := newService("test-secret", time.Hour)
	token, err := svc.GenerateToken("42", nil)
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := newService("other-secret", time.Hour)
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newService("test-secret", -time.Minute)
		tok, err := expired.GenerateToken("42", nil)
		require.NoError(t, err)
		_, err = expired.ValidateToken(tok)
		assert.Error(t, err)
	})
}
