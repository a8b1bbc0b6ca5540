package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品聚合根
//
// 聚合包含图片、属性引用和规格(Variant)，只能通过商品用例整体写入。
// Attributes 为规格可使用的属性集合；为空时商品只有一个默认规格
type Product struct {
	ID          uint
	Name        string
	Description string
	CategoryID  uint
	Category    *CategoryRef // 仅详情查询填充
	Images      []*ImageLink
	Attributes  []AttributeRef
	Variants    []*Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// CategoryRef 分类引用
type CategoryRef struct {
	ID   uint
	Name string
}

// AttributeRef 属性引用
type AttributeRef struct {
	ID   uint
	Name string
}

// ImageLink 图片地址，归属创建它的商品或规格
type ImageLink struct {
	ID  uint
	URL string
}

// NewImageLink 构造图片引用，随聚合一起持久化
func NewImageLink(url string) *ImageLink {
	return &ImageLink{URL: strings.TrimSpace(url)}
}

// NewImageLinks 批量构造
func NewImageLinks(urls []string) []*ImageLink {
	links := make([]*ImageLink, 0, len(urls))
	for _, u := range urls {
		links = append(links, NewImageLink(u))
	}
	return links
}

// Variant 商品规格
type Variant struct {
	ID        uint
	ProductID uint
	Price     decimal.Decimal
	Stock     int
	Image     *ImageLink
	Options   []VariantOption
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// VariantOption 规格选择的属性值，一个属性对应一个可选值
type VariantOption struct {
	ID            uint
	AttributeID   uint
	OptionID      uint
	AttributeName string // 仅详情查询填充
	OptionValue   string // 仅详情查询填充
}

// IsNew 尚未持久化
func (v *Variant) IsNew() bool {
	return v.ID == 0
}

// IsDeleted 已软删除
func (v *Variant) IsDeleted() bool {
	return v.DeletedAt != nil
}

// MarkDeleted 软删除，记录删除时间
func (v *Variant) MarkDeleted(now time.Time) {
	t := now
	v.DeletedAt = &t
}

// NewProduct 创建商品
func NewProduct(name, description string, categoryID uint) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Product{
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
	}, nil
}

// Rename 修改名称
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}
	p.Name = name
	return nil
}

// AttributeIDs 属性ID列表
func (p *Product) AttributeIDs() []uint {
	ids := make([]uint, len(p.Attributes))
	for i, a := range p.Attributes {
		ids[i] = a.ID
	}
	return ids
}

// HasAttributes 是否声明了属性（决定单规格/多规格）
func (p *Product) HasAttributes() bool {
	return len(p.Attributes) > 0
}

// ActiveVariants 未删除的规格
func (p *Product) ActiveVariants() []*Variant {
	out := make([]*Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if !v.IsDeleted() {
			out = append(out, v)
		}
	}
	return out
}

// FindVariant 按ID查找规格
func (p *Product) FindVariant(id uint) *Variant {
	for _, v := range p.Variants {
		if v.ID == id {
			return v
		}
	}
	return nil
}
