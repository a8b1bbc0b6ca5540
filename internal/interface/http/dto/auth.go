package dto

// RevokeResponse 注销令牌结果
type RevokeResponse struct {
	TokenID string `json:"tokenId" example:"3f1b7c2e-..."`
}
