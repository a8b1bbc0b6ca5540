package product

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/internal/domain/shared"
	"github.com/xiebiao/catalog/pkg/metrics"
	"github.com/xiebiao/catalog/pkg/tracing"
)

// CreateProductUseCase 创建商品聚合
type CreateProductUseCase struct {
	repo       product.Repository
	categories CategoryResolver
	attributes AttributeResolver
	builder    *product.VariantBuilder
	tx         TxManager
	after      afterCommit
}

func NewCreateProductUseCase(
	repo product.Repository,
	categories CategoryResolver,
	attributes AttributeResolver,
	tx TxManager,
	cache DetailCache,
	publisher EventPublisher,
	log *zap.Logger,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		repo:       repo,
		categories: categories,
		attributes: attributes,
		builder:    product.NewVariantBuilder(attributes),
		tx:         tx,
		after:      afterCommit{cache: cache, publisher: publisher, log: log},
	}
}

// CreateProductRequest 创建商品
// 规格的ID字段在创建时忽略
type CreateProductRequest struct {
	Name         string
	Description  string
	CategoryID   uint
	ImageURLs    []string
	AttributeIDs []uint
	Variants     []product.VariantSpec
}

// Execute 在一个事务内完成校验与写入，返回商品ID
//
// 所有引用和唯一性校验都在写入前完成；任何一步失败整个事务回滚，
// 不会留下图片、规格或属性关联
func (uc *CreateProductUseCase) Execute(ctx context.Context, req CreateProductRequest) (uint, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateProduct")

	var created *product.Product
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		p, err := product.NewProduct(req.Name, req.Description, req.CategoryID)
		if err != nil {
			return err
		}

		if _, err := uc.categories.Resolve(txCtx, req.CategoryID, "category"); err != nil {
			return err
		}
		if err := shared.EnsureUnique(txCtx, uc.repo.IDsByName, p.Name, "product name", 0); err != nil {
			return err
		}

		p.Attributes, err = resolveAttributes(txCtx, uc.attributes, req.AttributeIDs)
		if err != nil {
			return err
		}
		p.Images = product.NewImageLinks(req.ImageURLs)

		if len(req.Variants) == 0 {
			return product.ErrVariantsRequired
		}
		variants := make([]*product.Variant, 0, len(req.Variants))
		for _, spec := range req.Variants {
			spec.ID = nil
			v, err := uc.builder.Build(txCtx, spec, p.AttributeIDs())
			if err != nil {
				return err
			}
			variants = append(variants, v)
		}

		// 没有属性时只保留第一个规格
		rec, err := product.Reconcile(nil, variants, p.HasAttributes(), start)
		if err != nil {
			return err
		}
		p.Variants = rec.Persist

		if err := uc.repo.Create(txCtx, p); err != nil {
			return err
		}
		created = p
		return nil
	})

	metrics.RecordWrite("product", "create", err)
	metrics.Since(metrics.CatalogWriteDuration.WithLabelValues("create"), start)
	tracing.End(span, err)
	if err != nil {
		return 0, err
	}

	uc.after.run(ctx, product.EventCreated, created)
	return created.ID, nil
}
