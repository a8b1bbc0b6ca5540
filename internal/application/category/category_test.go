package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/domain/shared"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, name string, parentID *uint) (*category.Category, error) {
	args := m.Called(ctx, name, parentID)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockService) Update(ctx context.Context, id uint, patch category.UpdatePatch) (*category.Category, error) {
	args := m.Called(ctx, id, patch)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id uint) (*category.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

func (m *mockService) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*category.Category], error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(*shared.Page[*category.Category])
	return p, args.Error(1)
}

func (m *mockService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockService) Resolve(ctx context.Context, id uint, target string) (*category.Category, error) {
	args := m.Called(ctx, id, target)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

type fakeTx struct {
	err error
}

func (f *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.err
}

func TestUseCase_Create(t *testing.T) {
	t.Run("返回新ID", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, "shirts", (*uint)(nil)).Return(&category.Category{ID: 3, Name: "shirts"}, nil)

		id, err := NewUseCase(svc, &fakeTx{}, shared.DefaultPageLimits).Create(t.Context(), CreateRequest{Name: "shirts"})
		require.NoError(t, err)
		assert.Equal(t, uint(3), id)
	})

	t.Run("提交失败", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, "shirts", (*uint)(nil)).Return(&category.Category{ID: 3}, nil)

		_, err := NewUseCase(svc, &fakeTx{err: errors.New("commit failed")}, shared.DefaultPageLimits).
			Create(t.Context(), CreateRequest{Name: "shirts"})
		assert.EqualError(t, err, "commit failed")
	})
}

func TestUseCase_Update(t *testing.T) {
	svc := new(mockService)
	svc.On("Update", mock.Anything, uint(3), mock.Anything).Return(nil, category.ErrCategoryCycle)

	parent := uint(4)
	_, err := NewUseCase(svc, &fakeTx{}, shared.DefaultPageLimits).
		Update(t.Context(), 3, category.UpdatePatch{ParentID: &parent})
	assert.ErrorIs(t, err, category.ErrCategoryCycle)
}

func TestUseCase_List(t *testing.T) {
	svc := new(mockService)
	parentID := uint(1)
	q := shared.ListQuery{SearchKey: "sh", ForeignID: &parentID, Page: 1, Size: 10}
	svc.On("List", mock.Anything, q).Return(shared.NewPage(q, []*category.Category{{ID: 2, Name: "shirts", ParentID: &parentID}}, 5, 1), nil)

	page, err := NewUseCase(svc, &fakeTx{}, shared.DefaultPageLimits).
		List(t.Context(), shared.ListQuery{SearchKey: "sh", ForeignID: &parentID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, &parentID, page.Items[0].ParentID)
	assert.Equal(t, int64(5), page.Total)
}

func TestNewView(t *testing.T) {
	parentID := uint(1)
	v := NewView(&category.Category{
		ID:       2,
		Name:     "shirts",
		ParentID: &parentID,
		Parent:   &category.Category{ID: 1, Name: "clothes"},
		Children: []*category.Category{{ID: 3, Name: "polo"}},
	})
	require.NotNil(t, v.Parent)
	assert.Equal(t, "clothes", v.Parent.Name)
	require.Len(t, v.Children, 1)
	assert.Equal(t, "polo", v.Children[0].Name)
}
