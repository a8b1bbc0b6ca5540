package product

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/catalog/internal/domain/attribute"
)

// OptionPair 规格选择：属性 + 该属性下的一个可选值
type OptionPair struct {
	AttributeID uint
	OptionID    uint
}

// VariantSpec 规格写入参数
//
// ID非nil表示更新已有规格，其余nil字段保持原值；
// 新规格的nil字段取零值。Options为nil时更新保留原选项
type VariantSpec struct {
	ID       *uint
	Price    *decimal.Decimal
	Stock    *int
	ImageURL *string
	Options  []OptionPair
}

// OptionResolver 可选值引用校验
type OptionResolver interface {
	ResolveOption(ctx context.Context, id uint, target string) (*attribute.Option, error)
}

// VariantBuilder 把规格参数转换为规格实体
type VariantBuilder struct {
	options OptionResolver
}

func NewVariantBuilder(options OptionResolver) *VariantBuilder {
	return &VariantBuilder{options: options}
}

// Build 新建规格
func (b *VariantBuilder) Build(ctx context.Context, spec VariantSpec, attributeIDs []uint) (*Variant, error) {
	v := &Variant{}
	if err := b.apply(ctx, v, spec, attributeIDs); err != nil {
		return nil, err
	}
	return v, nil
}

// Normalize 将规格参数逐个转换为实体
// 带ID的参数原地更新existing中的规格，ID不属于该商品时视为引用不存在
func (b *VariantBuilder) Normalize(ctx context.Context, existing []*Variant, specs []VariantSpec, attributeIDs []uint) ([]*Variant, error) {
	byID := make(map[uint]*Variant, len(existing))
	for _, v := range existing {
		byID[v.ID] = v
	}

	seen := make(map[uint]bool, len(specs))
	out := make([]*Variant, 0, len(specs))
	for _, spec := range specs {
		if spec.ID == nil {
			v, err := b.Build(ctx, spec, attributeIDs)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
			continue
		}

		id := *spec.ID
		if seen[id] {
			return nil, ErrDuplicateVariant
		}
		seen[id] = true

		v, ok := byID[id]
		if !ok {
			return nil, ErrVariantNotFound
		}
		if err := b.apply(ctx, v, spec, attributeIDs); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (b *VariantBuilder) apply(ctx context.Context, v *Variant, spec VariantSpec, attributeIDs []uint) error {
	if spec.Price != nil {
		if spec.Price.IsNegative() {
			return ErrInvalidPrice
		}
		v.Price = *spec.Price
	}
	if spec.Stock != nil {
		if *spec.Stock < 0 {
			return ErrInvalidStock
		}
		v.Stock = *spec.Stock
	}
	if spec.ImageURL != nil {
		if *spec.ImageURL == "" {
			v.Image = nil
		} else {
			v.Image = NewImageLink(*spec.ImageURL)
		}
	}

	pairs := spec.Options
	if pairs == nil {
		pairs = make([]OptionPair, len(v.Options))
		for i, o := range v.Options {
			pairs[i] = OptionPair{AttributeID: o.AttributeID, OptionID: o.OptionID}
		}
	}

	options, err := b.resolveOptions(ctx, pairs, attributeIDs)
	if err != nil {
		return err
	}
	v.Options = mergeOptionIDs(v.Options, options)
	return nil
}

// resolveOptions 校验规格选项：属性必须在商品属性集合内，可选值必须存在且属于该属性
func (b *VariantBuilder) resolveOptions(ctx context.Context, pairs []OptionPair, attributeIDs []uint) ([]VariantOption, error) {
	allowed := make(map[uint]bool, len(attributeIDs))
	for _, id := range attributeIDs {
		allowed[id] = true
	}

	chosen := make(map[uint]bool, len(pairs))
	out := make([]VariantOption, 0, len(pairs))
	for _, pair := range pairs {
		if !allowed[pair.AttributeID] {
			return nil, ErrOptionNotInAttributes
		}
		if chosen[pair.AttributeID] {
			return nil, ErrDuplicateOptionChoice
		}
		chosen[pair.AttributeID] = true

		opt, err := b.options.ResolveOption(ctx, pair.OptionID, "atribute option")
		if err != nil {
			return nil, err
		}
		if !opt.BelongsTo(pair.AttributeID) {
			return nil, ErrOptionAttributeMismatch
		}
		out = append(out, VariantOption{AttributeID: pair.AttributeID, OptionID: pair.OptionID})
	}
	return out, nil
}

// mergeOptionIDs 选择未变化的选项沿用原记录ID
func mergeOptionIDs(old, next []VariantOption) []VariantOption {
	for i := range next {
		for _, o := range old {
			if o.AttributeID == next[i].AttributeID && o.OptionID == next[i].OptionID {
				next[i].ID = o.ID
				break
			}
		}
	}
	return next
}
