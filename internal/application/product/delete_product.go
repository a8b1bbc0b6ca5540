package product

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/pkg/metrics"
)

// DeleteProductUseCase 软删除商品，规格保持关联
type DeleteProductUseCase struct {
	repo  product.Repository
	after afterCommit
}

func NewDeleteProductUseCase(repo product.Repository, cache DetailCache, publisher EventPublisher, log *zap.Logger) *DeleteProductUseCase {
	return &DeleteProductUseCase{
		repo:  repo,
		after: afterCommit{cache: cache, publisher: publisher, log: log},
	}
}

func (uc *DeleteProductUseCase) Execute(ctx context.Context, id uint) error {
	err := uc.repo.Delete(ctx, id)
	metrics.RecordWrite("product", "delete", err)
	if err != nil {
		return err
	}

	uc.after.run(ctx, product.EventDeleted, &product.Product{ID: id})
	return nil
}
