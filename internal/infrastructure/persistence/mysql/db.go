package mysql

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/soft_delete"

	"github.com/xiebiao/catalog/internal/infrastructure/config"
)

// NewDB 创建MySQL连接并执行自动迁移
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         newGormLogger(log, logLevel),
		TranslateError: true, // 唯一索引冲突 -> gorm.ErrDuplicatedKey
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Migrate 自动迁移目录表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CategoryModel{},
		&AttributeModel{},
		&AttributeOptionModel{},
		&ImageLinkModel{},
		&ProductModel{},
		&VariantModel{},
		&VariantOptionModel{},
	)
}

// CategoryModel 分类表，parent_id自关联
type CategoryModel struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:30;not null;index;comment:分类名称"`
	ParentID  *uint           `gorm:"index;comment:父分类ID"`
	Parent    *CategoryModel  `gorm:"foreignKey:ParentID"`
	Children  []CategoryModel `gorm:"foreignKey:ParentID"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// AttributeModel 属性表
type AttributeModel struct {
	ID        uint                   `gorm:"primaryKey"`
	Name      string                 `gorm:"size:100;not null;index;comment:属性名称"`
	Options   []AttributeOptionModel `gorm:"foreignKey:AttributeID"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (AttributeModel) TableName() string {
	return "atributes"
}

// AttributeOptionModel 属性可选值表
type AttributeOptionModel struct {
	ID          uint   `gorm:"primaryKey"`
	Value       string `gorm:"size:100;not null;index;comment:可选值"`
	AttributeID uint   `gorm:"column:atribute_id;index;not null;comment:所属属性ID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (AttributeOptionModel) TableName() string {
	return "atribute_options"
}

// ImageLinkModel 图片表
// 商品图片通过product_id关联；规格图片由product_variants.image_id引用
type ImageLinkModel struct {
	ID        uint   `gorm:"primaryKey"`
	URL       string `gorm:"size:500;not null"`
	ProductID *uint  `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ImageLinkModel) TableName() string {
	return "image_links"
}

// ProductModel 商品表
// (name, deleted_at) 唯一索引：deleted_at为毫秒时间戳，未删除时为0，
// 因此只约束未删除商品的名称，已删除商品的名称可以复用
type ProductModel struct {
	ID          uint             `gorm:"primaryKey"`
	Name        string           `gorm:"size:200;not null;uniqueIndex:udx_products_name;comment:商品名称"`
	Description string           `gorm:"type:text;comment:商品描述"`
	CategoryID  uint             `gorm:"index;not null;comment:分类ID"`
	Category    *CategoryModel   `gorm:"foreignKey:CategoryID"`
	Images      []ImageLinkModel `gorm:"foreignKey:ProductID"`
	Attributes  []AttributeModel `gorm:"many2many:product_atributes;joinForeignKey:ProductID;joinReferences:AtributeID"`
	Variants    []VariantModel   `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   soft_delete.DeletedAt `gorm:"softDelete:milli;not null;default:0;uniqueIndex:udx_products_name"`
}

func (ProductModel) TableName() string {
	return "products"
}

// VariantModel 商品规格表
type VariantModel struct {
	ID        uint                 `gorm:"primaryKey"`
	ProductID uint                 `gorm:"index;not null;comment:商品ID"`
	Price     decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0;comment:价格"`
	Stock     int                  `gorm:"not null;default:0;comment:库存"`
	ImageID   *uint                `gorm:"comment:规格图片ID"`
	Image     *ImageLinkModel      `gorm:"foreignKey:ImageID"`
	Options   []VariantOptionModel `gorm:"foreignKey:VariantID"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (VariantModel) TableName() string {
	return "product_variants"
}

// VariantOptionModel 规格选择的属性值
type VariantOptionModel struct {
	ID          uint                  `gorm:"primaryKey"`
	VariantID   uint                  `gorm:"index;not null"`
	AttributeID uint                  `gorm:"column:atribute_id;not null"`
	OptionID    uint                  `gorm:"column:atribute_option_id;not null"`
	Attribute   *AttributeModel       `gorm:"foreignKey:AttributeID"`
	Option      *AttributeOptionModel `gorm:"foreignKey:OptionID"`
}

func (VariantOptionModel) TableName() string {
	return "variant_atribute_options"
}
