package product

import (
	"context"

	"github.com/xiebiao/catalog/internal/domain/shared"
)

// Changes 更新时需要同步的子集合
type Changes struct {
	ReplaceImages     bool            // 整体替换商品图片
	ReplaceAttributes bool            // 整体替换属性引用
	Variants          *Reconciliation // nil表示规格未变
}

// Repository 商品仓储接口
type Repository interface {
	// Create 创建商品及其图片、属性引用、规格
	Create(ctx context.Context, p *Product) error
	// FindByID 加载未删除商品、属性和未删除规格（写入前快照）
	FindByID(ctx context.Context, id uint) (*Product, error)
	// FindDetail 详情，包含已删除的商品与规格
	FindDetail(ctx context.Context, id uint) (*Product, error)
	IDsByName(ctx context.Context, name string) ([]uint, error)
	// Save 保存标量字段与changes指定的子集合
	Save(ctx context.Context, p *Product, changes Changes) error
	// List 按名称搜索，ForeignID为分类ID，预加载图片和规格
	List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Product], error)
	Delete(ctx context.Context, id uint) error
}
