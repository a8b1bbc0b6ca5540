package product

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/pkg/metrics"
)

// GetProductUseCase 商品详情（包含已删除的商品与规格），优先读缓存
type GetProductUseCase struct {
	repo  product.Repository
	cache DetailCache
	log   *zap.Logger
}

func NewGetProductUseCase(repo product.Repository, cache DetailCache, log *zap.Logger) *GetProductUseCase {
	return &GetProductUseCase{repo: repo, cache: cache, log: log}
}

func (uc *GetProductUseCase) Execute(ctx context.Context, id uint) (*ProductView, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetDetail(ctx, id)
		switch {
		case err != nil:
			uc.recordCache("error")
			uc.log.Warn("读取商品缓存失败", zap.Uint("product_id", id), zap.Error(err))
		case cached != nil:
			uc.recordCache("hit")
			view := NewProductView(cached)
			return &view, nil
		default:
			uc.recordCache("miss")
		}
	}

	p, err := uc.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	view := NewProductView(p)
	return &view, nil
}

// Load 从数据库读取详情并写入缓存
func (uc *GetProductUseCase) Load(ctx context.Context, id uint) (*product.Product, error) {
	p, err := uc.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetDetail(ctx, p); err != nil {
			uc.log.Warn("写入商品缓存失败", zap.Uint("product_id", id), zap.Error(err))
		}
	}
	return p, nil
}

func (uc *GetProductUseCase) recordCache(result string) {
	metrics.IncCounterVec(metrics.CacheRequestsTotal, map[string]string{"cache": "product_detail", "result": result})
}
