package product

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/catalog/internal/domain/attribute"
	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/internal/domain/shared"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 1
		for i, v := range p.Variants {
			v.ID = uint(10 + i)
		}
	}
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *mockRepository) FindDetail(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *mockRepository) IDsByName(ctx context.Context, name string) ([]uint, error) {
	args := m.Called(ctx, name)
	ids, _ := args.Get(0).([]uint)
	return ids, args.Error(1)
}

func (m *mockRepository) Save(ctx context.Context, p *product.Product, changes product.Changes) error {
	return m.Called(ctx, p, changes).Error(0)
}

func (m *mockRepository) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*product.Product], error) {
	args := m.Called(ctx, q)
	p, _ := args.Get(0).(*shared.Page[*product.Product])
	return p, args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type txKey struct{}

// fakeTx 直接执行fn，记录事务结果
type fakeTx struct {
	calls      int
	rolledBack bool
}

func (f *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	err := fn(context.WithValue(ctx, txKey{}, true))
	f.rolledBack = err != nil
	return err
}

type mockCategories struct {
	mock.Mock
}

func (m *mockCategories) Resolve(ctx context.Context, id uint, target string) (*category.Category, error) {
	args := m.Called(ctx, id, target)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}

// fakeAttributes 内存属性与可选值
type fakeAttributes struct {
	attrs   map[uint]*attribute.Attribute
	options map[uint]*attribute.Option
}

func newFakeAttributes() *fakeAttributes {
	return &fakeAttributes{
		attrs: map[uint]*attribute.Attribute{
			1: {ID: 1, Name: "color"},
			2: {ID: 2, Name: "size"},
		},
		options: map[uint]*attribute.Option{
			11: {ID: 11, Value: "red", AttributeID: 1},
			12: {ID: 12, Value: "blue", AttributeID: 1},
			21: {ID: 21, Value: "L", AttributeID: 2},
		},
	}
}

func (f *fakeAttributes) Resolve(ctx context.Context, id uint, target string) (*attribute.Attribute, error) {
	if a, ok := f.attrs[id]; ok {
		return a, nil
	}
	return nil, apperrors.ReferenceNotFound(target)
}

func (f *fakeAttributes) ResolveOption(ctx context.Context, id uint, target string) (*attribute.Option, error) {
	if o, ok := f.options[id]; ok {
		return o, nil
	}
	return nil, apperrors.ReferenceNotFound(target)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetDetail(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*product.Product)
	return p, args.Error(1)
}

func (m *mockCache) SetDetail(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockCache) DeleteDetail(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []product.Event
	err    error
}

func (r *recordingPublisher) Publish(ctx context.Context, ev product.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingPublisher) types() []product.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]product.EventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}
