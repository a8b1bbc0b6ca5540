package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/catalog/internal/interface/http/dto"
	"github.com/xiebiao/catalog/internal/interface/http/middleware"
	"github.com/xiebiao/catalog/pkg/response"
)

// AuthHandler 令牌管理
type AuthHandler struct {
	auth *middleware.AuthMiddleware
}

func NewAuthHandler(auth *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Revoke 吊销当前令牌
// @Summary      吊销令牌
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.RevokeResponse}
// @Failure      401 {object} response.ErrorResponse
// @Router       /api/v1/auth/revoke [post]
func (h *AuthHandler) Revoke(c *gin.Context) {
	tokenID, err := h.auth.Revoke(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.RevokeResponse{TokenID: tokenID})
}
