package dto

// CreateCategoryRequest 创建分类
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,max=30" example:"T-Shirts"`
	ParentID *uint  `json:"parentId" binding:"omitempty,min=1" example:"1"`
}

// UpdateCategoryRequest 部分更新，未传字段保持不变；parentId为0表示移到根
type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=30" example:"Shirts"`
	ParentID *uint   `json:"parentId" example:"0"`
}
