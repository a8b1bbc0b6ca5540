package category

import (
	"time"
	"unicode/utf8"
)

// MaxNameLength 分类名称最大长度
const MaxNameLength = 30

// Category 分类实体
// ParentID 为nil表示根分类；Parent/Children 仅在详情查询时填充
type Category struct {
	ID        uint
	Name      string
	ParentID  *uint
	Parent    *Category
	Children  []*Category
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewCategory 创建分类
func NewCategory(name string, parentID *uint) (*Category, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Category{Name: name, ParentID: parentID}, nil
}

// Rename 修改名称
func (c *Category) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = name
	return nil
}

// MoveTo 修改父分类，parentID为0表示移动到根
func (c *Category) MoveTo(parentID uint) {
	if parentID == 0 {
		c.ParentID = nil
		return
	}
	c.ParentID = &parentID
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}
