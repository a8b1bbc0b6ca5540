package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/plugin/soft_delete"

	"github.com/xiebiao/catalog/internal/domain/product"
	"github.com/xiebiao/catalog/internal/domain/shared"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品聚合
// 图片、规格及规格选项随商品一起插入；属性只写关联表
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	model := toProductModel(p)

	if err := getDB(ctx, r.db).Omit("Attributes.*").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.Conflict("product name")
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	for i, img := range p.Images {
		img.ID = model.Images[i].ID
	}
	for i, v := range p.Variants {
		backfillVariant(v, &model.Variants[i])
	}
	return nil
}

// FindByID 写入前快照：只包含未删除的图片和规格
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	model, err := findByID[ProductModel](getDB(ctx, r.db), id, product.ErrProductNotFound, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Attributes").
			Preload("Images", orderByID).
			Preload("Variants", orderByID).
			Preload("Variants.Image").
			Preload("Variants.Options", orderByID)
	})
	if err != nil {
		return nil, err
	}
	return toProductEntity(model), nil
}

// FindDetail 详情查询，商品、分类、属性和规格都包含已删除记录
// 商品图片整体替换，只返回当前图片
func (r *productRepository) FindDetail(ctx context.Context, id uint) (*product.Product, error) {
	unscoped := func(db *gorm.DB) *gorm.DB {
		return db.Unscoped().Order("id ASC")
	}
	currentImages := func(db *gorm.DB) *gorm.DB {
		return db.Where("deleted_at IS NULL").Order("id ASC")
	}

	var model ProductModel
	err := getDB(ctx, r.db).Unscoped().
		Preload("Category", unscoped).
		Preload("Attributes", unscoped).
		Preload("Images", currentImages).
		Preload("Variants", unscoped).
		Preload("Variants.Image", unscoped).
		Preload("Variants.Options", orderByID).
		Preload("Variants.Options.Attribute", unscoped).
		Preload("Variants.Options.Option", unscoped).
		First(&model, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品详情失败")
	}
	return toProductEntity(&model), nil
}

func (r *productRepository) IDsByName(ctx context.Context, name string) ([]uint, error) {
	return idsByColumn[ProductModel](getDB(ctx, r.db), "name", name)
}

// Save 更新商品标量字段，并按changes同步子集合
func (r *productRepository) Save(ctx context.Context, p *product.Product, changes product.Changes) error {
	db := getDB(ctx, r.db)

	err := db.Model(&ProductModel{ID: p.ID}).
		Select("name", "description", "category_id").
		Updates(&ProductModel{Name: p.Name, Description: p.Description, CategoryID: p.CategoryID}).Error
	if err != nil {
		if isDuplicateError(err) {
			return apperrors.Conflict("product name")
		}
		return apperrors.Wrap(err, "更新商品失败")
	}

	if changes.ReplaceImages {
		if err := r.replaceImages(db, p); err != nil {
			return err
		}
	}

	if changes.ReplaceAttributes {
		assoc := db.Model(&ProductModel{ID: p.ID}).Association("Attributes")
		var err error
		if len(p.Attributes) == 0 {
			err = assoc.Clear()
		} else {
			attrs := make([]AttributeModel, len(p.Attributes))
			for i, a := range p.Attributes {
				attrs[i] = AttributeModel{ID: a.ID}
			}
			err = assoc.Replace(attrs)
		}
		if err != nil {
			return apperrors.Wrap(err, "更新商品属性失败")
		}
	}

	if rec := changes.Variants; rec != nil {
		for _, v := range rec.Persist {
			if err := r.saveVariant(db, p.ID, v); err != nil {
				return err
			}
		}
		for _, v := range rec.SoftDeleted {
			err := db.Model(&VariantModel{}).Where("id = ?", v.ID).Update("deleted_at", *v.DeletedAt).Error
			if err != nil {
				return apperrors.Wrap(err, "删除商品规格失败")
			}
		}
	}

	p.UpdatedAt = time.Now()
	return nil
}

// replaceImages 软删除原有商品图片后插入新图片
func (r *productRepository) replaceImages(db *gorm.DB, p *product.Product) error {
	if err := db.Where("product_id = ?", p.ID).Delete(&ImageLinkModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除商品图片失败")
	}
	if len(p.Images) == 0 {
		return nil
	}

	models := make([]ImageLinkModel, len(p.Images))
	for i, img := range p.Images {
		models[i] = ImageLinkModel{URL: img.URL, ProductID: &p.ID}
	}
	if err := db.Create(&models).Error; err != nil {
		return apperrors.Wrap(err, "创建商品图片失败")
	}
	for i, img := range p.Images {
		img.ID = models[i].ID
	}
	return nil
}

func (r *productRepository) saveVariant(db *gorm.DB, productID uint, v *product.Variant) error {
	if v.IsNew() {
		model := toVariantModel(v)
		model.ProductID = productID
		if err := db.Create(model).Error; err != nil {
			return apperrors.Wrap(err, "创建商品规格失败")
		}
		v.ProductID = productID
		backfillVariant(v, model)
		return nil
	}

	var imageID *uint
	if v.Image != nil {
		if v.Image.ID == 0 {
			img := &ImageLinkModel{URL: v.Image.URL}
			if err := db.Create(img).Error; err != nil {
				return apperrors.Wrap(err, "创建规格图片失败")
			}
			v.Image.ID = img.ID
		}
		imageID = &v.Image.ID
	}

	err := db.Model(&VariantModel{ID: v.ID}).Updates(map[string]interface{}{
		"price":    v.Price,
		"stock":    v.Stock,
		"image_id": imageID,
	}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新商品规格失败")
	}

	// 选项：保留沿用ID的记录，删除其余，插入新增
	keep := make([]uint, 0, len(v.Options))
	for _, o := range v.Options {
		if o.ID != 0 {
			keep = append(keep, o.ID)
		}
	}
	del := db.Where("variant_id = ?", v.ID)
	if len(keep) > 0 {
		del = del.Where("id NOT IN ?", keep)
	}
	if err := del.Delete(&VariantOptionModel{}).Error; err != nil {
		return apperrors.Wrap(err, "更新规格选项失败")
	}

	for i := range v.Options {
		o := &v.Options[i]
		if o.ID != 0 {
			continue
		}
		m := &VariantOptionModel{VariantID: v.ID, AttributeID: o.AttributeID, OptionID: o.OptionID}
		if err := db.Create(m).Error; err != nil {
			return apperrors.Wrap(err, "更新规格选项失败")
		}
		o.ID = m.ID
	}
	return nil
}

func (r *productRepository) List(ctx context.Context, q shared.ListQuery) (*shared.Page[*product.Product], error) {
	res, err := paginate[ProductModel](ctx, r.db, q, listSpec{
		searchColumn:  "name",
		foreignColumn: "category_id",
		preload: func(db *gorm.DB) *gorm.DB {
			return db.Preload("Images", orderByID).
				Preload("Variants", orderByID).
				Preload("Variants.Image")
		},
	})
	if err != nil {
		return nil, err
	}
	return toPage(q, res, toProductEntity), nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return softDelete[ProductModel](getDB(ctx, r.db), id, product.ErrProductNotFound)
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func toProductModel(p *product.Product) *ProductModel {
	model := &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
	}
	for _, img := range p.Images {
		model.Images = append(model.Images, ImageLinkModel{URL: img.URL})
	}
	for _, a := range p.Attributes {
		model.Attributes = append(model.Attributes, AttributeModel{ID: a.ID})
	}
	for _, v := range p.Variants {
		model.Variants = append(model.Variants, *toVariantModel(v))
	}
	return model
}

func toVariantModel(v *product.Variant) *VariantModel {
	model := &VariantModel{
		ID:    v.ID,
		Price: v.Price,
		Stock: v.Stock,
	}
	if v.Image != nil {
		if v.Image.ID != 0 {
			model.ImageID = &v.Image.ID
		} else {
			model.Image = &ImageLinkModel{URL: v.Image.URL}
		}
	}
	for _, o := range v.Options {
		model.Options = append(model.Options, VariantOptionModel{AttributeID: o.AttributeID, OptionID: o.OptionID})
	}
	return model
}

// backfillVariant 插入后回填规格、图片和选项ID
func backfillVariant(v *product.Variant, model *VariantModel) {
	v.ID = model.ID
	v.ProductID = model.ProductID
	v.CreatedAt = model.CreatedAt
	v.UpdatedAt = model.UpdatedAt
	if v.Image != nil && model.Image != nil {
		v.Image.ID = model.Image.ID
	}
	for i := range v.Options {
		v.Options[i].ID = model.Options[i].ID
	}
}

func toProductEntity(model *ProductModel) *product.Product {
	p := &product.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CategoryID:  model.CategoryID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		DeletedAt:   milliPtr(model.DeletedAt),
	}
	if model.Category != nil {
		p.Category = &product.CategoryRef{ID: model.Category.ID, Name: model.Category.Name}
	}
	for _, img := range model.Images {
		p.Images = append(p.Images, &product.ImageLink{ID: img.ID, URL: img.URL})
	}
	for _, a := range model.Attributes {
		p.Attributes = append(p.Attributes, product.AttributeRef{ID: a.ID, Name: a.Name})
	}
	for i := range model.Variants {
		p.Variants = append(p.Variants, toVariantEntity(&model.Variants[i]))
	}
	return p
}

func toVariantEntity(model *VariantModel) *product.Variant {
	v := &product.Variant{
		ID:        model.ID,
		ProductID: model.ProductID,
		Price:     model.Price,
		Stock:     model.Stock,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		DeletedAt: deletedAtPtr(model.DeletedAt),
	}
	if model.Image != nil {
		v.Image = &product.ImageLink{ID: model.Image.ID, URL: model.Image.URL}
	}
	for _, o := range model.Options {
		opt := product.VariantOption{ID: o.ID, AttributeID: o.AttributeID, OptionID: o.OptionID}
		if o.Attribute != nil {
			opt.AttributeName = o.Attribute.Name
		}
		if o.Option != nil {
			opt.OptionValue = o.Option.Value
		}
		v.Options = append(v.Options, opt)
	}
	return v
}

// milliPtr soft_delete毫秒时间戳，0表示未删除
func milliPtr(d soft_delete.DeletedAt) *time.Time {
	if d == 0 {
		return nil
	}
	t := time.UnixMilli(int64(d))
	return &t
}
