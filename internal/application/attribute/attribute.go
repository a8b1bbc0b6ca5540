package attribute

import (
	"context"
	"time"

	"github.com/xiebiao/catalog/internal/domain/attribute"
	"github.com/xiebiao/catalog/internal/domain/shared"
	"github.com/xiebiao/catalog/pkg/metrics"
)

// TxManager 事务边界
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UseCase 属性与可选值
type UseCase struct {
	service attribute.Service
	tx      TxManager
	limits  shared.PageLimits
}

func NewUseCase(service attribute.Service, tx TxManager, limits shared.PageLimits) *UseCase {
	return &UseCase{service: service, tx: tx, limits: limits}
}

func (uc *UseCase) Create(ctx context.Context, name string) (uint, error) {
	var id uint
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		a, err := uc.service.Create(txCtx, name)
		if err != nil {
			return err
		}
		id = a.ID
		return nil
	})
	metrics.RecordWrite("atribute", "create", err)
	return id, err
}

func (uc *UseCase) Rename(ctx context.Context, id uint, name *string) (uint, error) {
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		_, err := uc.service.Rename(txCtx, id, name)
		return err
	})
	metrics.RecordWrite("atribute", "update", err)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*View, error) {
	a, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := NewView(a)
	return &v, nil
}

func (uc *UseCase) List(ctx context.Context, q shared.ListQuery) (*shared.Page[View], error) {
	page, err := uc.service.List(ctx, q.Normalize(uc.limits))
	if err != nil {
		return nil, err
	}
	return shared.Map(page, NewView), nil
}

func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	err := uc.service.Delete(ctx, id)
	metrics.RecordWrite("atribute", "delete", err)
	return err
}

// AddOptions 批量创建可选值，返回新ID
func (uc *UseCase) AddOptions(ctx context.Context, attributeID uint, values []string) ([]uint, error) {
	var ids []uint
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		options, err := uc.service.AddOptions(txCtx, attributeID, values)
		if err != nil {
			return err
		}
		ids = make([]uint, len(options))
		for i, o := range options {
			ids[i] = o.ID
		}
		return nil
	})
	metrics.RecordWrite("atribute_option", "create", err)
	return ids, err
}

func (uc *UseCase) UpdateOption(ctx context.Context, id uint, value *string) (uint, error) {
	_, err := uc.service.UpdateOption(ctx, id, value)
	metrics.RecordWrite("atribute_option", "update", err)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListOptions searchKey匹配value，ForeignID为atributeId
func (uc *UseCase) ListOptions(ctx context.Context, q shared.ListQuery) (*shared.Page[OptionView], error) {
	page, err := uc.service.ListOptions(ctx, q.Normalize(uc.limits))
	if err != nil {
		return nil, err
	}
	return shared.Map(page, NewOptionView), nil
}

func (uc *UseCase) DeleteOption(ctx context.Context, id uint) error {
	err := uc.service.DeleteOption(ctx, id)
	metrics.RecordWrite("atribute_option", "delete", err)
	return err
}

type View struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	Options   []OptionView `json:"options"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	DeletedAt *time.Time   `json:"deletedAt"`
}

type OptionView struct {
	ID         uint       `json:"id"`
	Value      string     `json:"value"`
	AtributeID uint       `json:"atributeId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt"`
}

func NewView(a *attribute.Attribute) View {
	v := View{
		ID:        a.ID,
		Name:      a.Name,
		Options:   make([]OptionView, 0, len(a.Options)),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		DeletedAt: a.DeletedAt,
	}
	for _, o := range a.Options {
		v.Options = append(v.Options, NewOptionView(o))
	}
	return v
}

func NewOptionView(o *attribute.Option) OptionView {
	return OptionView{
		ID:         o.ID,
		Value:      o.Value,
		AtributeID: o.AttributeID,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		DeletedAt:  o.DeletedAt,
	}
}
