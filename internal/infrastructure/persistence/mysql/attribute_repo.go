package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/catalog/internal/domain/attribute"
	"github.com/xiebiao/catalog/internal/domain/shared"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

type attributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) attribute.Repository {
	return &attributeRepository{db: db}
}

func (r *attributeRepository) Create(ctx context.Context, a *attribute.Attribute) error {
	model := &AttributeModel{Name: a.Name}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建属性失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *attributeRepository) Update(ctx context.Context, a *attribute.Attribute) error {
	err := getDB(ctx, r.db).Model(&AttributeModel{ID: a.ID}).Update("name", a.Name).Error
	if err != nil {
		return apperrors.Wrap(err, "更新属性失败")
	}
	return nil
}

func (r *attributeRepository) FindByID(ctx context.Context, id uint) (*attribute.Attribute, error) {
	model, err := findByID[AttributeModel](getDB(ctx, r.db), id, attribute.ErrAttributeNotFound, preloadOptions)
	if err != nil {
		return nil, err
	}
	return toAttributeEntity(model), nil
}

func (r *attributeRepository) IDsByName(ctx context.Context, name string) ([]uint, error) {
	return idsByColumn[AttributeModel](getDB(ctx, r.db), "name", name)
}

func (r *attributeRepository) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*attribute.Attribute], error) {
	res, err := paginate[AttributeModel](ctx, r.db, q, listSpec{
		searchColumn: "name",
		preload:      preloadOptions,
	})
	if err != nil {
		return nil, err
	}
	return toPage(q, res, toAttributeEntity), nil
}

func (r *attributeRepository) Delete(ctx context.Context, id uint) error {
	return softDelete[AttributeModel](getDB(ctx, r.db), id, attribute.ErrAttributeNotFound)
}

func preloadOptions(db *gorm.DB) *gorm.DB {
	return db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) attribute.OptionRepository {
	return &optionRepository{db: db}
}

// CreateBatch 批量插入，回填ID
func (r *optionRepository) CreateBatch(ctx context.Context, options []*attribute.Option) error {
	models := make([]AttributeOptionModel, len(options))
	for i, o := range options {
		models[i] = AttributeOptionModel{Value: o.Value, AttributeID: o.AttributeID}
	}

	if err := getDB(ctx, r.db).Create(&models).Error; err != nil {
		return apperrors.Wrap(err, "创建属性可选值失败")
	}

	for i := range models {
		options[i].ID = models[i].ID
		options[i].CreatedAt = models[i].CreatedAt
		options[i].UpdatedAt = models[i].UpdatedAt
	}
	return nil
}

func (r *optionRepository) Update(ctx context.Context, o *attribute.Option) error {
	err := getDB(ctx, r.db).Model(&AttributeOptionModel{ID: o.ID}).Update("value", o.Value).Error
	if err != nil {
		return apperrors.Wrap(err, "更新属性可选值失败")
	}
	return nil
}

func (r *optionRepository) FindByID(ctx context.Context, id uint) (*attribute.Option, error) {
	model, err := findByID[AttributeOptionModel](getDB(ctx, r.db), id, attribute.ErrOptionNotFound)
	if err != nil {
		return nil, err
	}
	return toOptionEntity(model), nil
}

func (r *optionRepository) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*attribute.Option], error) {
	res, err := paginate[AttributeOptionModel](ctx, r.db, q, listSpec{
		searchColumn:  "value",
		foreignColumn: "atribute_id",
	})
	if err != nil {
		return nil, err
	}
	return toPage(q, res, toOptionEntity), nil
}

func (r *optionRepository) Delete(ctx context.Context, id uint) error {
	return softDelete[AttributeOptionModel](getDB(ctx, r.db), id, attribute.ErrOptionNotFound)
}

func toAttributeEntity(model *AttributeModel) *attribute.Attribute {
	a := &attribute.Attribute{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedAt: deletedAtPtr(model.DeletedAt),
	}
	for i := range model.Options {
		a.Options = append(a.Options, toOptionEntity(&model.Options[i]))
	}
	return a
}

func toOptionEntity(model *AttributeOptionModel) *attribute.Option {
	return &attribute.Option{
		ID:          model.ID,
		Value:       model.Value,
		AttributeID: model.AttributeID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		DeletedAt:   deletedAtPtr(model.DeletedAt),
	}
}
