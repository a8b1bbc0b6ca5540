package category

import (
	"context"

	"github.com/xiebiao/catalog/internal/domain/shared"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

// UpdatePatch 分类部分更新，nil字段不修改；ParentID指向0表示移到根
type UpdatePatch struct {
	Name     *string
	ParentID *uint
}

// Service 分类领域服务
type Service interface {
	Create(ctx context.Context, name string, parentID *uint) (*Category, error)
	Update(ctx context.Context, id uint, patch UpdatePatch) (*Category, error)
	Get(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Category], error)
	Delete(ctx context.Context, id uint) error
	// Resolve 引用校验，供商品写入使用
	Resolve(ctx context.Context, id uint, target string) (*Category, error)
}

type service struct {
	repo     Repository
	maxDepth int
}

// NewService maxDepth为祖先遍历的最大步数
func NewService(repo Repository, maxDepth int) Service {
	return &service{repo: repo, maxDepth: maxDepth}
}

func (s *service) Create(ctx context.Context, name string, parentID *uint) (*Category, error) {
	c, err := NewCategory(name, parentID)
	if err != nil {
		return nil, err
	}

	if err := shared.EnsureUnique(ctx, s.repo.IDsByName, name, "category name", 0); err != nil {
		return nil, err
	}

	if parentID != nil {
		if _, err := s.Resolve(ctx, *parentID, "parent category"); err != nil {
			return nil, err
		}
		// 新分类没有后代，只需限制深度
		if err := s.checkAncestors(ctx, 0, *parentID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, id uint, patch UpdatePatch) (*Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if err := shared.EnsureUnique(ctx, s.repo.IDsByName, *patch.Name, "category name", id); err != nil {
			return nil, err
		}
		if err := c.Rename(*patch.Name); err != nil {
			return nil, err
		}
	}

	if patch.ParentID != nil {
		parentID := *patch.ParentID
		if parentID != 0 {
			if _, err := s.Resolve(ctx, parentID, "parent category"); err != nil {
				return nil, err
			}
			if err := s.checkAncestors(ctx, id, parentID); err != nil {
				return nil, err
			}
		}
		c.MoveTo(parentID)
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// checkAncestors 从新父分类向上遍历
// 遇到自身说明成环；超过maxDepth步视为过深（也兜住库中已存在的环）
func (s *service) checkAncestors(ctx context.Context, selfID, parentID uint) error {
	current := &parentID
	for steps := 0; current != nil; steps++ {
		if selfID != 0 && *current == selfID {
			return ErrCategoryCycle
		}
		if steps >= s.maxDepth {
			return ErrCategoryTooDeep
		}

		next, err := s.repo.ParentIDOf(ctx, *current)
		if err != nil {
			// 已删除的祖先视为链路终点
			if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
				return nil
			}
			return err
		}
		current = next
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Category], error) {
	return s.repo.List(ctx, q)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Resolve(ctx context.Context, id uint, target string) (*Category, error) {
	return shared.Resolve(ctx, s.repo.FindByID, id, target)
}
