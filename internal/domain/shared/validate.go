package shared

import (
	"context"

	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

// Finder 按ID读取未删除记录，不存在时返回 ErrCodeNotFound 错误
type Finder[T any] func(ctx context.Context, id uint) (*T, error)

// Resolve 引用校验：记录不存在或已删除时返回 "not found <target>"
func Resolve[T any](ctx context.Context, find Finder[T], id uint, target string) (*T, error) {
	v, err := find(ctx, id)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			return nil, apperrors.ReferenceNotFound(target)
		}
		return nil, err
	}
	return v, nil
}

// ResolveAll 依次校验多个引用，遇到第一个缺失即返回
func ResolveAll[T any](ctx context.Context, find Finder[T], ids []uint, target string) ([]*T, error) {
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		v, err := Resolve(ctx, find, id, target)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// IDLookup 返回字段值等于value的未删除记录ID
type IDLookup func(ctx context.Context, value string) ([]uint, error)

// EnsureUnique 唯一性预校验，excludeID为当前记录ID（新建时传0）
//
// 这是先查后写的快速路径，数据库唯一索引才是最终保证
func EnsureUnique(ctx context.Context, lookup IDLookup, value, target string, excludeID uint) error {
	ids, err := lookup(ctx, value)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id != excludeID {
			return apperrors.Conflict(target)
		}
	}
	return nil
}
