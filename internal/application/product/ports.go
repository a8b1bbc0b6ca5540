package product

import (
	"context"

	"github.com/xiebiao/catalog/internal/domain/attribute"
	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/domain/product"
)

const tracerName = "catalog/application/product"

// TxManager 事务边界，由 mysql.TxManager 实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DetailCache 商品详情缓存，由 redis.ProductCache 实现
// GetDetail 未命中返回 nil, nil
type DetailCache interface {
	GetDetail(ctx context.Context, id uint) (*product.Product, error)
	SetDetail(ctx context.Context, p *product.Product) error
	DeleteDetail(ctx context.Context, id uint) error
}

// EventPublisher 商品事件发布
type EventPublisher interface {
	Publish(ctx context.Context, ev product.Event) error
}

// CategoryResolver 分类引用校验
type CategoryResolver interface {
	Resolve(ctx context.Context, id uint, target string) (*category.Category, error)
}

// AttributeResolver 属性与可选值引用校验
type AttributeResolver interface {
	Resolve(ctx context.Context, id uint, target string) (*attribute.Attribute, error)
	ResolveOption(ctx context.Context, id uint, target string) (*attribute.Option, error)
}
