package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/catalog/internal/domain/product"
)

// ProductCache 商品详情缓存（Cache-Aside）
// 写入后删除缓存，下次读取时重新加载
type ProductCache struct {
	client    *redis.Client
	detailTTL time.Duration
}

func NewProductCache(client *redis.Client, detailTTL time.Duration) *ProductCache {
	return &ProductCache{client: client, detailTTL: detailTTL}
}

// GetDetail 未命中返回 nil, nil
func (c *ProductCache) GetDetail(ctx context.Context, id uint) (*product.Product, error) {
	val, err := c.client.Get(ctx, detailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}

	var p product.Product
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}
	return &p, nil
}

func (c *ProductCache) SetDetail(ctx context.Context, p *product.Product) error {
	val, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	if err := c.client.Set(ctx, detailKey(p.ID), val, c.detailTTL).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

func (c *ProductCache) DeleteDetail(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, detailKey(id)).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}

// detailKey 格式：catalog:product:detail:{id}
func detailKey(id uint) string {
	return fmt.Sprintf("catalog:product:detail:%d", id)
}
