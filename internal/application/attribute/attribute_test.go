package attribute

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/catalog/internal/domain/attribute"
	"github.com/xiebiao/catalog/internal/domain/shared"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

type mockService struct {
	attribute.Service
	mock.Mock
}

func (m *mockService) AddOptions(ctx context.Context, attributeID uint, values []string) ([]*attribute.Option, error) {
	args := m.Called(ctx, attributeID, values)
	o, _ := args.Get(0).([]*attribute.Option)
	return o, args.Error(1)
}

func (m *mockService) ListOptions(ctx context.Context, q shared.ListQuery) (*shared.Page[*attribute.Option], error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(*shared.Page[*attribute.Option])
	return p, args.Error(1)
}

type directTx struct{}

func (directTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestUseCase_AddOptions(t *testing.T) {
	t.Run("返回新建可选值ID", func(t *testing.T) {
		svc := new(mockService)
		svc.On("AddOptions", mock.Anything, uint(1), []string{"red", "blue"}).
			Return([]*attribute.Option{{ID: 11, AttributeID: 1}, {ID: 12, AttributeID: 1}}, nil)

		ids, err := NewUseCase(svc, directTx{}, shared.DefaultPageLimits).AddOptions(t.Context(), 1, []string{"red", "blue"})
		require.NoError(t, err)
		assert.Equal(t, []uint{11, 12}, ids)
	})

	t.Run("属性不存在", func(t *testing.T) {
		svc := new(mockService)
		svc.On("AddOptions", mock.Anything, uint(9), mock.Anything).Return(nil, apperrors.ReferenceNotFound("atribute"))

		_, err := NewUseCase(svc, directTx{}, shared.DefaultPageLimits).AddOptions(t.Context(), 9, []string{"x"})
		assert.ErrorIs(t, err, apperrors.ReferenceNotFound("atribute"))
	})
}

func TestUseCase_ListOptions(t *testing.T) {
	svc := new(mockService)
	attrID := uint(1)
	q := shared.ListQuery{ForeignID: &attrID, All: true}
	svc.On("ListOptions", mock.Anything, q).
		Return(shared.NewPage(q, []*attribute.Option{{ID: 11, Value: "red", AttributeID: 1}}, 4, 1), nil)

	page, err := NewUseCase(svc, directTx{}, shared.DefaultPageLimits).ListOptions(t.Context(), q)
	require.NoError(t, err)
	assert.True(t, page.All)
	require.Len(t, page.Items, 1)

	raw, err := json.Marshal(page.Items[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"atributeId":1`)
}
