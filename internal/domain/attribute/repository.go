package attribute

import (
	"context"

	"github.com/xiebiao/catalog/internal/domain/shared"
)

// Repository 属性仓储接口
type Repository interface {
	Create(ctx context.Context, a *Attribute) error
	Update(ctx context.Context, a *Attribute) error
	// FindByID 查询未删除属性（含可选值）
	FindByID(ctx context.Context, id uint) (*Attribute, error)
	IDsByName(ctx context.Context, name string) ([]uint, error)
	List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Attribute], error)
	Delete(ctx context.Context, id uint) error
}

// OptionRepository 属性可选值仓储接口
type OptionRepository interface {
	CreateBatch(ctx context.Context, options []*Option) error
	Update(ctx context.Context, o *Option) error
	FindByID(ctx context.Context, id uint) (*Option, error)
	// List 按value搜索，ForeignID为属性ID
	List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Option], error)
	Delete(ctx context.Context, id uint) error
}
