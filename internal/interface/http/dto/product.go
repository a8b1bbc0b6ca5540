package dto

import (
	"github.com/shopspring/decimal"

	"github.com/xiebiao/catalog/internal/domain/product"
)

// VariantOptionRequest 规格选择的属性值
type VariantOptionRequest struct {
	AtributeID       uint `json:"atributeId" binding:"required" example:"1"`
	AtributeOptionID uint `json:"atributeOptionId" binding:"required" example:"11"`
}

// VariantRequest 规格
// 更新时带id表示修改已有规格，不带id为新规格；未出现在列表中的旧规格会被软删除
type VariantRequest struct {
	ID       *uint                  `json:"id" example:"5"`
	Price    *decimal.Decimal       `json:"price" swaggertype:"string" example:"99.90"`
	Stock    *int                   `json:"stock" binding:"omitempty,min=0" example:"100"`
	ImageURL *string                `json:"imageUrl" binding:"omitempty,max=500" example:"https://example.com/v.jpg"`
	Options  []VariantOptionRequest `json:"options" binding:"omitempty,dive"`
}

// CreateProductRequest 创建商品
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=255" example:"Basic Tee"`
	Description string           `json:"description" binding:"max=5000" example:"cotton t-shirt"`
	CategoryID  uint             `json:"categoryId" binding:"required" example:"1"`
	ImageURLs   []string         `json:"imageUrls" binding:"omitempty,dive,required,max=500"`
	AtributeIDs []uint           `json:"atributeIds"`
	Variants    []VariantRequest `json:"variants" binding:"required,min=1,dive"`
}

// UpdateProductRequest 部分更新
// imageUrls 整体替换图片；atributeIds 替换属性集合；variants 与现有规格调和
type UpdateProductRequest struct {
	Name        *string           `json:"name" binding:"omitempty,min=1,max=255" example:"Basic Tee v2"`
	Description *string           `json:"description" binding:"omitempty,max=5000"`
	CategoryID  *uint             `json:"categoryId" binding:"omitempty,min=1" example:"2"`
	ImageURLs   *[]string         `json:"imageUrls"`
	AtributeIDs *[]uint           `json:"atributeIds"`
	Variants    *[]VariantRequest `json:"variants"`
}

// ToVariantSpecs 转换为领域参数
func ToVariantSpecs(variants []VariantRequest) []product.VariantSpec {
	specs := make([]product.VariantSpec, len(variants))
	for i, v := range variants {
		specs[i] = product.VariantSpec{
			ID:       v.ID,
			Price:    v.Price,
			Stock:    v.Stock,
			ImageURL: v.ImageURL,
		}
		if v.Options != nil {
			pairs := make([]product.OptionPair, len(v.Options))
			for j, o := range v.Options {
				pairs[j] = product.OptionPair{AttributeID: o.AtributeID, OptionID: o.AtributeOptionID}
			}
			specs[i].Options = pairs
		}
	}
	return specs
}
