package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/catalog/internal/domain/product"
)

// ProductView 商品响应
type ProductView struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CategoryID  uint          `json:"categoryId"`
	Category    *RefView      `json:"category,omitempty"`
	Images      []ImageView   `json:"images"`
	Atributes   []RefView     `json:"atributes,omitempty"`
	Variants    []VariantView `json:"variants"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	DeletedAt   *time.Time    `json:"deletedAt"`
}

type RefView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ImageView struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

type VariantView struct {
	ID        uint                `json:"id"`
	Price     decimal.Decimal     `json:"price"`
	Stock     int                 `json:"stock"`
	Image     *ImageView          `json:"image"`
	Options   []VariantOptionView `json:"options"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
	DeletedAt *time.Time          `json:"deletedAt"`
}

type VariantOptionView struct {
	AtributeID       uint   `json:"atributeId"`
	AtributeName     string `json:"atributeName,omitempty"`
	AtributeOptionID uint   `json:"atributeOptionId"`
	Value            string `json:"value,omitempty"`
}

// NewProductView 领域实体 → 响应
func NewProductView(p *product.Product) ProductView {
	v := ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Images:      make([]ImageView, 0, len(p.Images)),
		Variants:    make([]VariantView, 0, len(p.Variants)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
	}
	if p.Category != nil {
		v.Category = &RefView{ID: p.Category.ID, Name: p.Category.Name}
	}
	for _, img := range p.Images {
		v.Images = append(v.Images, ImageView{ID: img.ID, URL: img.URL})
	}
	for _, a := range p.Attributes {
		v.Atributes = append(v.Atributes, RefView{ID: a.ID, Name: a.Name})
	}
	for _, variant := range p.Variants {
		v.Variants = append(v.Variants, newVariantView(variant))
	}
	return v
}

func newVariantView(v *product.Variant) VariantView {
	out := VariantView{
		ID:        v.ID,
		Price:     v.Price,
		Stock:     v.Stock,
		Options:   make([]VariantOptionView, 0, len(v.Options)),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		DeletedAt: v.DeletedAt,
	}
	if v.Image != nil {
		out.Image = &ImageView{ID: v.Image.ID, URL: v.Image.URL}
	}
	for _, o := range v.Options {
		out.Options = append(out.Options, VariantOptionView{
			AtributeID:       o.AttributeID,
			AtributeName:     o.AttributeName,
			AtributeOptionID: o.OptionID,
			Value:            o.OptionValue,
		})
	}
	return out
}
