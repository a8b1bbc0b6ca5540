package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Normalize(t *testing.T) {
	limits := PageLimits{DefaultSize: 10, MaxSize: 50}

	tests := []struct {
		name     string
		in       ListQuery
		wantPage int
		wantSize int
	}{
		{"缺省值", ListQuery{}, 1, 10},
		{"保留合法值", ListQuery{Page: 3, Size: 20}, 3, 20},
		{"超出上限", ListQuery{Page: 1, Size: 500}, 1, 50},
		{"负数页码", ListQuery{Page: -2, Size: 5}, 1, 5},
		{"all模式清空分页", ListQuery{Page: 4, Size: 20, All: true}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize(limits)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.Size)
		})
	}
}

func TestListQuery_SkipTake(t *testing.T) {
	t.Run("第二页每页10条", func(t *testing.T) {
		q := ListQuery{Page: 2, Size: 10}
		assert.Equal(t, 10, q.Skip())
		assert.Equal(t, 10, q.Take())
	})

	t.Run("all模式不限制", func(t *testing.T) {
		q := ListQuery{Page: 2, Size: 10, All: true}
		assert.Equal(t, 0, q.Skip())
		assert.Equal(t, 0, q.Take())
	})

	t.Run("搜索模式", func(t *testing.T) {
		assert.Equal(t, "%Run%", ListQuery{SearchKey: "Run"}.Pattern())
		assert.Equal(t, "%%", ListQuery{}.Pattern())
	})
}

func TestMap(t *testing.T) {
	p := NewPage(ListQuery{Page: 2, Size: 2}, []int{1, 2}, 9, 4)
	got := Map(p, func(i int) string { return string(rune('a' + i)) })

	assert.Equal(t, []string{"b", "c"}, got.Items)
	assert.Equal(t, int64(9), got.Total)
	assert.Equal(t, int64(4), got.Matched)
	assert.Equal(t, 2, got.Page)
}
