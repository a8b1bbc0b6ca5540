package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/catalog/pkg/errors"
	"github.com/xiebiao/catalog/pkg/jwt"
	"github.com/xiebiao/catalog/pkg/response"
)

const claimsKey = "claims"

// Blacklist 已吊销的Token，由 redis.TokenBlacklist 实现
type Blacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware 写接口的JWT认证
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  Blacklist
}

func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist Blacklist) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, blacklist: blacklist}
}

// RequireAuth 要求 Authorization: Bearer <token>
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		claims, err := m.jwtManager.ParseToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

				revoked, err := m.blacklist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			response.Error(c, apperrors.ErrTokenRevoked)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Revoke 吊销当前请求的Token，需挂在RequireAuth之后
func (m *AuthMiddleware) Revoke(c *gin.Context) (string, error) {
	claims := GetClaims(c)
	if claims == nil {
		return "", apperrors.ErrUnauthorized
	}
	if err := m.blacklist.Revoke(c.Request.Context(), claims.ID, claims.TTL(time.Now())); err != nil {
		return "", err
	}
	return claims.ID, nil
}

// GetClaims 当前操作者，未认证时为nil
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, exists := c.Get(claimsKey); exists {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetOperatorID 当前操作者ID，未认证时为0
func GetOperatorID(c *gin.Context) uint {
	if claims := GetClaims(c); claims != nil {
		return claims.OperatorID
	}
	return 0
}
