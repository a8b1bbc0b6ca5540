package attribute

import (
	"context"
	"strings"

	"github.com/xiebiao/catalog/internal/domain/shared"
)

// Service 属性与可选值的领域服务
type Service interface {
	Create(ctx context.Context, name string) (*Attribute, error)
	Rename(ctx context.Context, id uint, name *string) (*Attribute, error)
	Get(ctx context.Context, id uint) (*Attribute, error)
	List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Attribute], error)
	Delete(ctx context.Context, id uint) error

	// AddOptions 校验属性存在后批量创建可选值
	AddOptions(ctx context.Context, attributeID uint, values []string) ([]*Option, error)
	UpdateOption(ctx context.Context, id uint, value *string) (*Option, error)
	ListOptions(ctx context.Context, q shared.ListQuery) (*shared.Page[*Option], error)
	DeleteOption(ctx context.Context, id uint) error

	// Resolve / ResolveOption 引用校验，供商品写入使用
	Resolve(ctx context.Context, id uint, target string) (*Attribute, error)
	ResolveOption(ctx context.Context, id uint, target string) (*Option, error)
}

type service struct {
	repo       Repository
	optionRepo OptionRepository
}

func NewService(repo Repository, optionRepo OptionRepository) Service {
	return &service{repo: repo, optionRepo: optionRepo}
}

func (s *service) Create(ctx context.Context, name string) (*Attribute, error) {
	a, err := NewAttribute(name)
	if err != nil {
		return nil, err
	}
	if err := shared.EnsureUnique(ctx, s.repo.IDsByName, a.Name, "atribute name", 0); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Rename(ctx context.Context, id uint, name *string) (*Attribute, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return a, nil
	}

	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil, ErrInvalidName
	}
	if err := shared.EnsureUnique(ctx, s.repo.IDsByName, trimmed, "atribute name", id); err != nil {
		return nil, err
	}
	a.Name = trimmed

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Attribute, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*Attribute], error) {
	return s.repo.List(ctx, q)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) AddOptions(ctx context.Context, attributeID uint, values []string) ([]*Option, error) {
	if _, err := s.Resolve(ctx, attributeID, "atribute"); err != nil {
		return nil, err
	}

	options, err := NewOptions(attributeID, values)
	if err != nil {
		return nil, err
	}
	if err := s.optionRepo.CreateBatch(ctx, options); err != nil {
		return nil, err
	}
	return options, nil
}

func (s *service) UpdateOption(ctx context.Context, id uint, value *string) (*Option, error) {
	o, err := s.optionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return o, nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, ErrInvalidOptionValue
	}
	o.Value = trimmed

	if err := s.optionRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListOptions(ctx context.Context, q shared.ListQuery) (*shared.Page[*Option], error) {
	return s.optionRepo.List(ctx, q)
}

func (s *service) DeleteOption(ctx context.Context, id uint) error {
	return s.optionRepo.Delete(ctx, id)
}

func (s *service) Resolve(ctx context.Context, id uint, target string) (*Attribute, error) {
	return shared.Resolve(ctx, s.repo.FindByID, id, target)
}

func (s *service) ResolveOption(ctx context.Context, id uint, target string) (*Option, error) {
	return shared.Resolve(ctx, s.optionRepo.FindByID, id, target)
}
