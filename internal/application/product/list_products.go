package product

import (
	"context"

	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/internal/domain/shared"
)

// ListProductsUseCase 按名称搜索、按分类过滤的商品列表
type ListProductsUseCase struct {
	repo   product.Repository
	limits shared.PageLimits
}

func NewListProductsUseCase(repo product.Repository, limits shared.PageLimits) *ListProductsUseCase {
	return &ListProductsUseCase{repo: repo, limits: limits}
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, q shared.ListQuery) (*shared.Page[ProductView], error) {
	page, err := uc.repo.List(ctx, q.Normalize(uc.limits))
	if err != nil {
		return nil, err
	}
	return shared.Map(page, func(p *product.Product) ProductView {
		return NewProductView(p)
	}), nil
}
