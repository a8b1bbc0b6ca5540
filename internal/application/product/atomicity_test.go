package product_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appproduct "github.com/xiebiao/catalog/internal/application/product"
	"github.com/xiebiao/catalog/internal/domain/attribute"
	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/internal/infrastructure/event"
	"github.com/xiebiao/catalog/internal/infrastructure/persistence/mysql"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

var errInjected = errors.New("injected failure")

// failingRepository 写入成功后返回错误，模拟事务后半段失败
type failingRepository struct {
	product.Repository
	failCreate bool
	failSave   bool
}

func (r *failingRepository) Create(ctx context.Context, p *product.Product) error {
	if err := r.Repository.Create(ctx, p); err != nil {
		return err
	}
	if r.failCreate {
		return errInjected
	}
	return nil
}

func (r *failingRepository) Save(ctx context.Context, p *product.Product, changes product.Changes) error {
	if err := r.Repository.Save(ctx, p, changes); err != nil {
		return err
	}
	if r.failSave {
		return errInjected
	}
	return nil
}

type env struct {
	db         *gorm.DB
	repo       *failingRepository
	categories category.Service
	attributes attribute.Service
	create     *appproduct.CreateProductUseCase
	update     *appproduct.UpdateProductUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, mysql.Migrate(db))

	repo := &failingRepository{Repository: mysql.NewProductRepository(db)}
	categories := category.NewService(mysql.NewCategoryRepository(db), 32)
	attributes := attribute.NewService(mysql.NewAttributeRepository(db), mysql.NewOptionRepository(db))
	tx := mysql.NewTxManager(db)
	publisher := event.NewNopPublisher(zap.NewNop())

	return &env{
		db:         db,
		repo:       repo,
		categories: categories,
		attributes: attributes,
		create:     appproduct.NewCreateProductUseCase(repo, categories, attributes, tx, nil, publisher, zap.NewNop()),
		update:     appproduct.NewUpdateProductUseCase(repo, categories, attributes, tx, nil, publisher, zap.NewNop()),
	}
}

func (e *env) count(t *testing.T, model interface{}) int64 {
	var n int64
	require.NoError(t, e.db.Unscoped().Model(model).Count(&n).Error)
	return n
}

func (e *env) seed(t *testing.T) (categoryID, attributeID uint, optionIDs []uint) {
	ctx := context.Background()
	c, err := e.categories.Create(ctx, "shirts", nil)
	require.NoError(t, err)
	a, err := e.attributes.Create(ctx, "color")
	require.NoError(t, err)
	opts, err := e.attributes.AddOptions(ctx, a.ID, []string{"red", "blue"})
	require.NoError(t, err)
	return c.ID, a.ID, []uint{opts[0].ID, opts[1].ID}
}

func createRequest(categoryID, attributeID uint, optionIDs []uint) appproduct.CreateProductRequest {
	price := decimal.NewFromInt(10)
	img := "v.png"
	return appproduct.CreateProductRequest{
		Name:         "tee",
		CategoryID:   categoryID,
		ImageURLs:    []string{"a.png", "b.png"},
		AttributeIDs: []uint{attributeID},
		Variants: []product.VariantSpec{
			{Price: &price, ImageURL: &img, Options: []product.OptionPair{{AttributeID: attributeID, OptionID: optionIDs[0]}}},
			{Price: &price, Options: []product.OptionPair{{AttributeID: attributeID, OptionID: optionIDs[1]}}},
		},
	}
}

func TestCreateProduct_Atomic(t *testing.T) {
	e := newEnv(t)
	categoryID, attributeID, optionIDs := e.seed(t)

	t.Run("后续失败时整体回滚", func(t *testing.T) {
		e.repo.failCreate = true
		defer func() { e.repo.failCreate = false }()

		_, err := e.create.Execute(context.Background(), createRequest(categoryID, attributeID, optionIDs))
		assert.ErrorIs(t, err, errInjected)

		assert.Zero(t, e.count(t, &mysql.ProductModel{}))
		assert.Zero(t, e.count(t, &mysql.VariantModel{}))
		assert.Zero(t, e.count(t, &mysql.VariantOptionModel{}))
		assert.Zero(t, e.count(t, &mysql.ImageLinkModel{}))
	})

	t.Run("引用缺失时不写入", func(t *testing.T) {
		req := createRequest(categoryID, attributeID, optionIDs)
		req.Variants[1].Options[0].OptionID = 999

		_, err := e.create.Execute(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ReferenceNotFound("atribute option"))
		assert.Zero(t, e.count(t, &mysql.ProductModel{}))
		assert.Zero(t, e.count(t, &mysql.ImageLinkModel{}))
	})

	t.Run("成功写入整个聚合", func(t *testing.T) {
		id, err := e.create.Execute(context.Background(), createRequest(categoryID, attributeID, optionIDs))
		require.NoError(t, err)

		p, err := e.repo.FindDetail(context.Background(), id)
		require.NoError(t, err)
		assert.Len(t, p.Images, 2)
		require.Len(t, p.Variants, 2)
		require.NotNil(t, p.Variants[0].Image)
		assert.Equal(t, "v.png", p.Variants[0].Image.URL)
		assert.Equal(t, "red", p.Variants[0].Options[0].OptionValue)
	})
}

func TestUpdateProduct_Atomic(t *testing.T) {
	e := newEnv(t)
	categoryID, attributeID, optionIDs := e.seed(t)
	ctx := context.Background()

	id, err := e.create.Execute(ctx, createRequest(categoryID, attributeID, optionIDs))
	require.NoError(t, err)
	before, err := e.repo.FindByID(ctx, id)
	require.NoError(t, err)
	keepID := before.Variants[0].ID

	e.repo.failSave = true
	newName := "hoodie"
	specs := []product.VariantSpec{{ID: &keepID}}
	_, err = e.update.Execute(ctx, id, appproduct.UpdateProductRequest{Name: &newName, Variants: &specs})
	assert.ErrorIs(t, err, errInjected)
	e.repo.failSave = false

	after, err := e.repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "tee", after.Name)
	assert.Len(t, after.Variants, 2)

	// 回滚后再次更新成功
	_, err = e.update.Execute(ctx, id, appproduct.UpdateProductRequest{Name: &newName, Variants: &specs})
	require.NoError(t, err)

	detail, err := e.repo.FindDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hoodie", detail.Name)
	require.Len(t, detail.Variants, 2)
	var deleted int
	for _, v := range detail.Variants {
		if v.DeletedAt != nil {
			deleted++
		}
	}
	assert.Equal(t, 1, deleted)
}
