package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/domain/shared"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{Name: c.Name, ParentID: c.ParentID}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	result := getDB(ctx, r.db).Model(&CategoryModel{ID: c.ID}).
		Select("name", "parent_id").
		Updates(&CategoryModel{Name: c.Name, ParentID: c.ParentID})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	model, err := findByID[CategoryModel](getDB(ctx, r.db), id, category.ErrCategoryNotFound, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Parent").Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
	})
	if err != nil {
		return nil, err
	}
	return toCategoryEntity(model), nil
}

func (r *categoryRepository) ParentIDOf(ctx context.Context, id uint) (*uint, error) {
	var model CategoryModel
	err := getDB(ctx, r.db).Select("id", "parent_id").First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询父分类失败")
	}
	return model.ParentID, nil
}

func (r *categoryRepository) IDsByName(ctx context.Context, name string) ([]uint, error) {
	return idsByColumn[CategoryModel](getDB(ctx, r.db), "name", name)
}

func (r *categoryRepository) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*category.Category], error) {
	res, err := paginate[CategoryModel](ctx, r.db, q, listSpec{
		searchColumn:  "name",
		foreignColumn: "parent_id",
	})
	if err != nil {
		return nil, err
	}
	return toPage(q, res, toCategoryEntity), nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return softDelete[CategoryModel](getDB(ctx, r.db), id, category.ErrCategoryNotFound)
}

// toCategoryEntity GORM模型 → 领域实体
func toCategoryEntity(model *CategoryModel) *category.Category {
	c := &category.Category{
		ID:        model.ID,
		Name:      model.Name,
		ParentID:  model.ParentID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedAt: deletedAtPtr(model.DeletedAt),
	}
	if model.Parent != nil {
		c.Parent = toCategoryEntity(model.Parent)
	}
	for i := range model.Children {
		c.Children = append(c.Children, toCategoryEntity(&model.Children[i]))
	}
	return c
}

func deletedAtPtr(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
