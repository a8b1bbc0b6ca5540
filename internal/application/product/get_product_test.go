package product

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/internal/domain/shared"
)

func detailProduct() *product.Product {
	return &product.Product{
		ID:         7,
		Name:       "tee",
		CategoryID: 5,
		Category:   &product.CategoryRef{ID: 5, Name: "shirts"},
		Attributes: []product.AttributeRef{{ID: 1, Name: "color"}},
		Variants: []*product.Variant{{
			ID:      70,
			Price:   decimal.RequireFromString("9.90"),
			Options: []product.VariantOption{{ID: 700, AttributeID: 1, OptionID: 11, AttributeName: "color", OptionValue: "red"}},
		}},
	}
}

func TestGetProduct(t *testing.T) {
	ctx := t.Context()

	t.Run("缓存命中", func(t *testing.T) {
		repo, cache := new(mockRepository), new(mockCache)
		cache.On("GetDetail", mock.Anything, uint(7)).Return(detailProduct(), nil)

		view, err := NewGetProductUseCase(repo, cache, zap.NewNop()).Execute(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "tee", view.Name)
		repo.AssertNotCalled(t, "FindDetail", mock.Anything, mock.Anything)
	})

	t.Run("缓存未命中读库并回填", func(t *testing.T) {
		repo, cache := new(mockRepository), new(mockCache)
		cache.On("GetDetail", mock.Anything, uint(7)).Return(nil, nil)
		repo.On("FindDetail", mock.Anything, uint(7)).Return(detailProduct(), nil)
		cache.On("SetDetail", mock.Anything, mock.Anything).Return(nil)

		view, err := NewGetProductUseCase(repo, cache, zap.NewNop()).Execute(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, view.Category)
		assert.Equal(t, "shirts", view.Category.Name)
		cache.AssertCalled(t, "SetDetail", mock.Anything, mock.Anything)
	})

	t.Run("缓存故障降级读库", func(t *testing.T) {
		repo, cache := new(mockRepository), new(mockCache)
		cache.On("GetDetail", mock.Anything, uint(7)).Return(nil, errors.New("redis down"))
		repo.On("FindDetail", mock.Anything, uint(7)).Return(detailProduct(), nil)
		cache.On("SetDetail", mock.Anything, mock.Anything).Return(errors.New("redis down"))

		view, err := NewGetProductUseCase(repo, cache, zap.NewNop()).Execute(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), view.ID)
	})

	t.Run("商品不存在", func(t *testing.T) {
		repo, cache := new(mockRepository), new(mockCache)
		cache.On("GetDetail", mock.Anything, uint(8)).Return(nil, nil)
		repo.On("FindDetail", mock.Anything, uint(8)).Return(nil, product.ErrProductNotFound)

		_, err := NewGetProductUseCase(repo, cache, zap.NewNop()).Execute(ctx, 8)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})
}

func TestProductView_JSON(t *testing.T) {
	raw, err := json.Marshal(NewProductView(detailProduct()))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, float64(5), body["categoryId"])
	assert.Contains(t, body, "atributes")

	variant := body["variants"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "9.9", variant["price"])
	option := variant["options"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(1), option["atributeId"])
	assert.Equal(t, float64(11), option["atributeOptionId"])
	assert.Equal(t, "red", option["value"])
}

func TestListProducts(t *testing.T) {
	repo := new(mockRepository)
	normalized := shared.ListQuery{SearchKey: "tee", Page: 1, Size: 20}
	repo.On("List", mock.Anything, normalized).
		Return(shared.NewPage(normalized, []*product.Product{detailProduct()}, 3, 1), nil)

	page, err := NewListProductsUseCase(repo, shared.PageLimits{DefaultSize: 10, MaxSize: 20}).
		Execute(t.Context(), shared.ListQuery{SearchKey: "tee", Size: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int64(1), page.Matched)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "tee", page.Items[0].Name)
}

func TestDeleteProduct(t *testing.T) {
	t.Run("删除后清理缓存并发布事件", func(t *testing.T) {
		repo, cache, pub := new(mockRepository), new(mockCache), new(recordingPublisher)
		repo.On("Delete", mock.Anything, uint(7)).Return(nil)
		cache.On("DeleteDetail", mock.Anything, uint(7)).Return(nil)

		err := NewDeleteProductUseCase(repo, cache, pub, zap.NewNop()).Execute(t.Context(), 7)
		require.NoError(t, err)
		cache.AssertExpectations(t)
		assert.Equal(t, []product.EventType{product.EventDeleted}, pub.types())
	})

	t.Run("商品不存在", func(t *testing.T) {
		repo, cache, pub := new(mockRepository), new(mockCache), new(recordingPublisher)
		repo.On("Delete", mock.Anything, uint(7)).Return(product.ErrProductNotFound)

		err := NewDeleteProductUseCase(repo, cache, pub, zap.NewNop()).Execute(t.Context(), 7)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
		assert.Empty(t, pub.types())
	})
}

func TestCacheWarmer(t *testing.T) {
	newWarmer := func() (*CacheWarmer, *mockRepository, *mockCache) {
		repo, cache := new(mockRepository), new(mockCache)
		loader := NewGetProductUseCase(repo, cache, zap.NewNop())
		return NewCacheWarmer(loader, cache, "catalog.cache-warmer", zap.NewNop()), repo, cache
	}
	message := func(t *testing.T, typ product.EventType) []byte {
		raw, err := json.Marshal(product.Event{Type: typ, ProductID: 7})
		require.NoError(t, err)
		return raw
	}

	t.Run("更新事件重建缓存", func(t *testing.T) {
		w, repo, cache := newWarmer()
		cache.On("DeleteDetail", mock.Anything, uint(7)).Return(nil)
		repo.On("FindDetail", mock.Anything, uint(7)).Return(detailProduct(), nil)
		cache.On("SetDetail", mock.Anything, mock.Anything).Return(nil)

		err := w.Handle(t.Context(), string(product.EventUpdated), message(t, product.EventUpdated))
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("删除事件只清理缓存", func(t *testing.T) {
		w, repo, cache := newWarmer()
		cache.On("DeleteDetail", mock.Anything, uint(7)).Return(nil)

		err := w.Handle(t.Context(), string(product.EventDeleted), message(t, product.EventDeleted))
		require.NoError(t, err)
		repo.AssertNotCalled(t, "FindDetail", mock.Anything, mock.Anything)
	})

	t.Run("商品已不存在时确认消息", func(t *testing.T) {
		w, repo, cache := newWarmer()
		cache.On("DeleteDetail", mock.Anything, uint(7)).Return(nil)
		repo.On("FindDetail", mock.Anything, uint(7)).Return(nil, product.ErrProductNotFound)

		err := w.Handle(t.Context(), string(product.EventCreated), message(t, product.EventCreated))
		assert.NoError(t, err)
	})

	t.Run("缓存故障时返回错误以便重投", func(t *testing.T) {
		w, _, cache := newWarmer()
		cache.On("DeleteDetail", mock.Anything, uint(7)).Return(errors.New("redis down"))

		err := w.Handle(t.Context(), string(product.EventDeleted), message(t, product.EventDeleted))
		assert.Error(t, err)
	})

	t.Run("格式错误的消息直接丢弃", func(t *testing.T) {
		w, _, cache := newWarmer()

		err := w.Handle(t.Context(), "catalog.product.updated", []byte("{not json"))
		assert.NoError(t, err)
		cache.AssertNotCalled(t, "DeleteDetail", mock.Anything, mock.Anything)
	})
}
