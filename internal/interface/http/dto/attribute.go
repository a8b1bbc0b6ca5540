package dto

type CreateAttributeRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"color"`
}

type UpdateAttributeRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100" example:"colour"`
}

// AddOptionsRequest 批量添加属性可选值
type AddOptionsRequest struct {
	Data []string `json:"data" binding:"required,min=1,dive,required,max=100" example:"red,blue"`
}

type UpdateOptionRequest struct {
	Value *string `json:"value" binding:"omitempty,min=1,max=100" example:"navy"`
}
