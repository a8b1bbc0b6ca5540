package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

func TestManager(t *testing.T) {
	m := NewManager("secret", "catalog", time.Hour)

	t.Run("签发并解析", func(t *testing.T) {
		token, err := m.GenerateToken(7, "ops")
		require.NoError(t, err)

		claims, err := m.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.OperatorID)
		assert.Equal(t, "ops", claims.Name)
		assert.NotEmpty(t, claims.ID)
		assert.InDelta(t, time.Hour.Seconds(), claims.TTL(time.Now()).Seconds(), 5)
	})

	t.Run("过期", func(t *testing.T) {
		expired := NewManager("secret", "catalog", -time.Minute)
		token, err := expired.GenerateToken(1, "ops")
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("密钥不同", func(t *testing.T) {
		other := NewManager("other", "catalog", time.Hour)
		token, err := other.GenerateToken(1, "ops")
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("签发者不同", func(t *testing.T) {
		other := NewManager("secret", "someone-else", time.Hour)
		token, err := other.GenerateToken(1, "ops")
		require.NoError(t, err)

		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
