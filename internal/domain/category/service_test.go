package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/catalog/internal/domain/shared"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *Category) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 100
	}
	return args.Error(0)
}

func (m *mockRepository) Update(ctx context.Context, c *Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*Category)
	return c, args.Error(1)
}

func (m *mockRepository) ParentIDOf(ctx context.Context, id uint) (*uint, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*uint)
	return p, args.Error(1)
}

func (m *mockRepository) IDsByName(ctx context.Context, name string) ([]uint, error) {
	args := m.Called(ctx, name)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Category], error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(*shared.Page[*Category])
	return p, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func uintPtr(v uint) *uint { return &v }

func strPtr(v string) *string { return &v }

// tree 按 child->parent 关系模拟 ParentIDOf
func (m *mockRepository) tree(parents map[uint]*uint) {
	for id, p := range parents {
		m.On("ParentIDOf", mock.Anything, id).Return(p, nil).Maybe()
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("创建根分类", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("IDsByName", ctx, "Shoes").Return([]uint(nil), nil)
		repo.On("Create", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

		c, err := NewService(repo, 8).Create(ctx, "Shoes", nil)
		require.NoError(t, err)
		assert.Equal(t, uint(100), c.ID)
		assert.Nil(t, c.ParentID)
		repo.AssertExpectations(t)
	})

	t.Run("父分类不存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("IDsByName", ctx, "Running").Return([]uint(nil), nil)
		repo.On("FindByID", ctx, uint(9)).Return(nil, ErrCategoryNotFound)

		_, err := NewService(repo, 8).Create(ctx, "Running", uintPtr(9))
		assert.Equal(t, "not found parent category", apperrors.GetAppError(err).Message)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("名称重复", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("IDsByName", ctx, "Shoes").Return([]uint{1}, nil)

		_, err := NewService(repo, 8).Create(ctx, "Shoes", nil)
		assert.ErrorIs(t, err, apperrors.Conflict("category name"))
	})

	t.Run("名称过长", func(t *testing.T) {
		repo := new(mockRepository)

		_, err := NewService(repo, 8).Create(ctx, "abcdefghijklmnopqrstuvwxyz012345", nil)
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("超过最大深度", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("IDsByName", ctx, "Leaf").Return([]uint(nil), nil)
		repo.On("FindByID", ctx, uint(3)).Return(&Category{ID: 3}, nil)
		// 3 -> 2 -> 1 -> root
		repo.tree(map[uint]*uint{3: uintPtr(2), 2: uintPtr(1), 1: nil})

		_, err := NewService(repo, 2).Create(ctx, "Leaf", uintPtr(3))
		assert.ErrorIs(t, err, ErrCategoryTooDeep)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("移动到自己的后代下形成环", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(1)).Return(&Category{ID: 1, Name: "Shoes"}, nil)
		repo.On("FindByID", ctx, uint(3)).Return(&Category{ID: 3}, nil)
		// 3 -> 2 -> 1
		repo.tree(map[uint]*uint{3: uintPtr(2), 2: uintPtr(1), 1: nil})

		_, err := NewService(repo, 8).Update(ctx, 1, UpdatePatch{ParentID: uintPtr(3)})
		assert.ErrorIs(t, err, ErrCategoryCycle)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("父分类设为自己", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(1)).Return(&Category{ID: 1, Name: "Shoes"}, nil)

		_, err := NewService(repo, 8).Update(ctx, 1, UpdatePatch{ParentID: uintPtr(1)})
		assert.ErrorIs(t, err, ErrCategoryCycle)
	})

	t.Run("合法移动", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(5)).Return(&Category{ID: 5, Name: "Trail"}, nil)
		repo.On("FindByID", ctx, uint(2)).Return(&Category{ID: 2}, nil)
		repo.tree(map[uint]*uint{2: uintPtr(1), 1: nil})
		repo.On("Update", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

		c, err := NewService(repo, 8).Update(ctx, 5, UpdatePatch{ParentID: uintPtr(2)})
		require.NoError(t, err)
		require.NotNil(t, c.ParentID)
		assert.Equal(t, uint(2), *c.ParentID)
	})

	t.Run("移到根并改名保留自身名称", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(5)).Return(&Category{ID: 5, Name: "Trail", ParentID: uintPtr(2)}, nil)
		repo.On("IDsByName", ctx, "Trail").Return([]uint{5}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

		c, err := NewService(repo, 8).Update(ctx, 5, UpdatePatch{Name: strPtr("Trail"), ParentID: uintPtr(0)})
		require.NoError(t, err)
		assert.Nil(t, c.ParentID)
		assert.Equal(t, "Trail", c.Name)
	})

	t.Run("分类不存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(7)).Return(nil, ErrCategoryNotFound)

		_, err := NewService(repo, 8).Update(ctx, 7, UpdatePatch{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
