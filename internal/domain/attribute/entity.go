package attribute

import (
	"strings"
	"time"
)

// Attribute 商品属性（如颜色、尺码），拥有一组可选值
type Attribute struct {
	ID        uint
	Name      string
	Options   []*Option
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Option 属性可选值，始终属于唯一的属性
type Option struct {
	ID          uint
	Value       string
	AttributeID uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

func NewAttribute(name string) (*Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Attribute{Name: name}, nil
}

// NewOptions 为属性批量构造可选值
func NewOptions(attributeID uint, values []string) ([]*Option, error) {
	if len(values) == 0 {
		return nil, ErrEmptyOptions
	}
	options := make([]*Option, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			return nil, ErrInvalidOptionValue
		}
		options = append(options, &Option{Value: v, AttributeID: attributeID})
	}
	return options, nil
}

// BelongsTo 可选值是否属于指定属性
func (o *Option) BelongsTo(attributeID uint) bool {
	return o.AttributeID == attributeID
}
