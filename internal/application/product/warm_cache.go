package product

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/catalog/internal/domain/product"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
	"github.com/xiebiao/catalog/pkg/metrics"
)

// CacheWarmer 消费商品事件，重建详情缓存
// created/updated 重新加载并写入缓存，deleted 只清理
type CacheWarmer struct {
	loader *GetProductUseCase
	cache  DetailCache
	queue  string
	log    *zap.Logger
}

func NewCacheWarmer(loader *GetProductUseCase, cache DetailCache, queue string, log *zap.Logger) *CacheWarmer {
	return &CacheWarmer{loader: loader, cache: cache, queue: queue, log: log}
}

// Handle 实现 mq.Handler
func (w *CacheWarmer) Handle(ctx context.Context, routingKey string, body []byte) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveHistogram(metrics.MessageProcessingDuration, time.Since(start).Seconds())
		metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{"queue": w.queue, "result": metrics.Result(err)})
	}()

	var ev product.Event
	if err := json.Unmarshal(body, &ev); err != nil {
		// 格式错误的消息重试也不会成功，直接丢弃
		w.log.Error("商品事件解析失败", zap.String("routing_key", routingKey), zap.Error(err))
		return nil
	}

	switch ev.Type {
	case product.EventCreated, product.EventUpdated:
		if err := w.cache.DeleteDetail(ctx, ev.ProductID); err != nil {
			return fmt.Errorf("清理缓存失败: %w", err)
		}
		if _, err := w.loader.Load(ctx, ev.ProductID); err != nil {
			if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
				return nil
			}
			return err
		}
		w.log.Debug("商品缓存已重建", zap.Uint("product_id", ev.ProductID))
	case product.EventDeleted:
		if err := w.cache.DeleteDetail(ctx, ev.ProductID); err != nil {
			return fmt.Errorf("清理缓存失败: %w", err)
		}
	default:
		w.log.Warn("未知的商品事件", zap.String("type", string(ev.Type)))
	}
	return nil
}
