package product

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/internal/domain/shared"
)

// resolveAttributes 校验属性引用，重复ID只保留一次
func resolveAttributes(ctx context.Context, attrs AttributeResolver, ids []uint) ([]product.AttributeRef, error) {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	resolved, err := shared.ResolveAll(ctx, attrs.Resolve, unique, "atribute")
	if err != nil {
		return nil, err
	}

	refs := make([]product.AttributeRef, len(resolved))
	for i, a := range resolved {
		refs[i] = product.AttributeRef{ID: a.ID, Name: a.Name}
	}
	return refs, nil
}

// afterCommit 事务提交后清理缓存并发布事件
// 失败只记录日志，写入已经生效
type afterCommit struct {
	cache     DetailCache
	publisher EventPublisher
	log       *zap.Logger
}

func (a afterCommit) run(ctx context.Context, t product.EventType, p *product.Product) {
	if a.cache != nil && t != product.EventCreated {
		if err := a.cache.DeleteDetail(ctx, p.ID); err != nil {
			a.log.Warn("删除商品缓存失败", zap.Uint("product_id", p.ID), zap.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, product.NewEvent(t, p)); err != nil {
			a.log.Warn("发布商品事件失败",
				zap.String("type", string(t)),
				zap.Uint("product_id", p.ID),
				zap.Error(err),
			)
		}
	}
}
