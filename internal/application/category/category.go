package category

import (
	"context"
	"time"

	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/domain/shared"
	"github.com/xiebiao/catalog/pkg/metrics"
)

// TxManager 事务边界
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UseCase 分类增删改查
// 写操作在事务内完成校验与写入
type UseCase struct {
	service category.Service
	tx      TxManager
	limits  shared.PageLimits
}

func NewUseCase(service category.Service, tx TxManager, limits shared.PageLimits) *UseCase {
	return &UseCase{service: service, tx: tx, limits: limits}
}

// CreateRequest 创建分类
type CreateRequest struct {
	Name     string
	ParentID *uint
}

func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (uint, error) {
	var id uint
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		c, err := uc.service.Create(txCtx, req.Name, req.ParentID)
		if err != nil {
			return err
		}
		id = c.ID
		return nil
	})
	metrics.RecordWrite("category", "create", err)
	return id, err
}

func (uc *UseCase) Update(ctx context.Context, id uint, patch category.UpdatePatch) (uint, error) {
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		_, err := uc.service.Update(txCtx, id, patch)
		return err
	})
	metrics.RecordWrite("category", "update", err)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*View, error) {
	c, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewView(c)
	return &v, nil
}

// List searchKey匹配名称，ForeignID为parentId
func (uc *UseCase) List(ctx context.Context, q shared.ListQuery) (*shared.Page[View], error) {
	page, err := uc.service.List(ctx, q.Normalize(uc.limits))
	if err != nil {
		return nil, err
	}
	return shared.Map(page, NewView), nil
}

func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	err := uc.service.Delete(ctx, id)
	metrics.RecordWrite("category", "delete", err)
	return err
}

// View 分类响应
type View struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	ParentID  *uint      `json:"parentId"`
	Parent    *View      `json:"parent,omitempty"`
	Children  []View     `json:"children,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

func NewView(c *category.Category) View {
	v := View{
		ID:        c.ID,
		Name:      c.Name,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
	if c.Parent != nil {
		parent := NewView(c.Parent)
		v.Parent = &parent
	}
	for _, child := range c.Children {
		v.Children = append(v.Children, NewView(child))
	}
	return v
}
