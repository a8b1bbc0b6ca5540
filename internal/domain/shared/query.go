package shared

// ListQuery 通用列表查询
//
// SearchKey 对实体的搜索字段做包含匹配（%key%）；ForeignID 非nil时按外键等值过滤
// （如分类的parentId、商品的categoryId、选项的atributeId）。
// All 为true时返回全部匹配记录，不做分页
type ListQuery struct {
	SearchKey string
	ForeignID *uint
	Page      int
	Size      int
	All       bool
}

// PageLimits 分页默认值与上限
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

var DefaultPageLimits = PageLimits{DefaultSize: 10, MaxSize: 100}

// Normalize 补全页码与页大小
func (q ListQuery) Normalize(limits PageLimits) ListQuery {
	if q.All {
		q.Page, q.Size = 0, 0
		return q
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = limits.DefaultSize
	}
	if limits.MaxSize > 0 && q.Size > limits.MaxSize {
		q.Size = limits.MaxSize
	}
	return q
}

// Skip 偏移量 (page-1)*size
func (q ListQuery) Skip() int {
	if q.All || q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Size
}

// Take 本页数量，all模式返回0表示不限制
func (q ListQuery) Take() int {
	if q.All {
		return 0
	}
	return q.Size
}

// Pattern LIKE匹配模式
func (q ListQuery) Pattern() string {
	return "%" + q.SearchKey + "%"
}

// Page 列表结果
type Page[T any] struct {
	Items   []T
	Total   int64 // 实体未删除记录总数
	Matched int64 // 满足过滤条件的记录数
	Page    int
	Size    int
	All     bool
}

// NewPage 由查询条件构造结果
func NewPage[T any](q ListQuery, items []T, total, matched int64) *Page[T] {
	return &Page[T]{
		Items:   items,
		Total:   total,
		Matched: matched,
		Page:    q.Page,
		Size:    q.Size,
		All:     q.All,
	}
}

// Map 转换元素类型
func Map[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	items := make([]R, len(p.Items))
	for i, it := range p.Items {
		items[i] = fn(it)
	}
	return &Page[R]{
		Items:   items,
		Total:   p.Total,
		Matched: p.Matched,
		Page:    p.Page,
		Size:    p.Size,
		All:     p.All,
	}
}
