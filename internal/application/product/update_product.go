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

// UpdateProductUseCase 部分更新商品聚合
type UpdateProductUseCase struct {
	repo       product.Repository
	categories CategoryResolver
	attributes AttributeResolver
	builder    *product.VariantBuilder
	tx         TxManager
	after      afterCommit
}

func NewUpdateProductUseCase(
	repo product.Repository,
	categories CategoryResolver,
	attributes AttributeResolver,
	tx TxManager,
	cache DetailCache,
	publisher EventPublisher,
	log *zap.Logger,
) *UpdateProductUseCase {
	return &UpdateProductUseCase{
		repo:       repo,
		categories: categories,
		attributes: attributes,
		builder:    product.NewVariantBuilder(attributes),
		tx:         tx,
		after:      afterCommit{cache: cache, publisher: publisher, log: log},
	}
}

// UpdateProductRequest nil字段保持不变
//
// ImageURLs 非nil时整体替换商品图片；AttributeIDs 非nil时替换属性集合；
// Variants 非nil时与现有规格调和，未出现的旧规格软删除
type UpdateProductRequest struct {
	Name         *string
	Description  *string
	CategoryID   *uint
	ImageURLs    *[]string
	AttributeIDs *[]uint
	Variants     *[]product.VariantSpec
}

func (uc *UpdateProductUseCase) Execute(ctx context.Context, id uint, req UpdateProductRequest) (uint, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateProduct")

	var (
		updated     *product.Product
		softDeleted int
	)
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		p, err := uc.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		var changes product.Changes

		if req.Name != nil {
			if err := p.Rename(*req.Name); err != nil {
				return err
			}
			if err := shared.EnsureUnique(txCtx, uc.repo.IDsByName, p.Name, "product name", p.ID); err != nil {
				return err
			}
		}

		if req.Description != nil {
			p.Description = *req.Description
		}

		if req.CategoryID != nil {
			if _, err := uc.categories.Resolve(txCtx, *req.CategoryID, "category"); err != nil {
				return err
			}
			p.CategoryID = *req.CategoryID
		}

		if req.AttributeIDs != nil {
			p.Attributes, err = resolveAttributes(txCtx, uc.attributes, *req.AttributeIDs)
			if err != nil {
				return err
			}
			changes.ReplaceAttributes = true
		}

		if req.ImageURLs != nil {
			p.Images = product.NewImageLinks(*req.ImageURLs)
			changes.ReplaceImages = true
		}

		if req.Variants != nil {
			// 以更新后的属性集合校验规格选项
			existing := p.Variants
			normalized, err := uc.builder.Normalize(txCtx, existing, *req.Variants, p.AttributeIDs())
			if err != nil {
				return err
			}
			rec, err := product.Reconcile(existing, normalized, p.HasAttributes(), time.Now())
			if err != nil {
				return err
			}
			p.Variants = rec.All()
			changes.Variants = &rec
			softDeleted = len(rec.SoftDeleted)
		}

		if err := uc.repo.Save(txCtx, p, changes); err != nil {
			return err
		}
		updated = p
		return nil
	})

	metrics.RecordWrite("product", "update", err)
	metrics.Since(metrics.CatalogWriteDuration.WithLabelValues("update"), start)
	tracing.End(span, err)
	if err != nil {
		return 0, err
	}

	metrics.AddCounter(metrics.VariantsSoftDeletedTotal, softDeleted)
	uc.after.run(ctx, product.EventUpdated, updated)
	return updated.ID, nil
}
