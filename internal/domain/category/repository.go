package category

import (
	"context"

	"github.com/xiebiao/catalog/internal/domain/shared"
)

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	// FindByID 查询未删除分类，同时加载父分类和子分类
	FindByID(ctx context.Context, id uint) (*Category, error)
	// ParentIDOf 只读取父分类ID，用于祖先遍历
	ParentIDOf(ctx context.Context, id uint) (*uint, error)
	// IDsByName 同名未删除分类的ID
	IDsByName(ctx context.Context, name string) ([]uint, error)
	// List 按名称搜索，ForeignID为父分类ID
	List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Category], error)
	Delete(ctx context.Context, id uint) error
}
