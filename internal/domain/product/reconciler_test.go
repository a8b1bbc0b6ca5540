package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variants(ids ...uint) []*Variant {
	out := make([]*Variant, len(ids))
	for i, id := range ids {
		out[i] = &Variant{ID: id}
	}
	return out
}

func ids(vs []*Variant) []uint {
	out := make([]uint, len(vs))
	for i, v := range vs {
		out[i] = v.ID
	}
	return out
}

func TestReconcile(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("相同规格集合不产生变化", func(t *testing.T) {
		existing := variants(1, 2)
		normalized := []*Variant{existing[0], existing[1]}

		r, err := Reconcile(existing, normalized, true, now)
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2}, ids(r.Persist))
		assert.Empty(t, r.SoftDeleted)
		for _, v := range r.Persist {
			assert.False(t, v.IsNew())
			assert.Nil(t, v.DeletedAt)
		}
	})

	t.Run("移除的规格被软删除", func(t *testing.T) {
		existing := variants(1, 2)

		r, err := Reconcile(existing, []*Variant{existing[0]}, true, now)
		require.NoError(t, err)
		assert.Equal(t, []uint{1}, ids(r.Persist))
		require.Len(t, r.SoftDeleted, 1)
		assert.Equal(t, uint(2), r.SoftDeleted[0].ID)
		require.NotNil(t, r.SoftDeleted[0].DeletedAt)
		assert.Equal(t, now, *r.SoftDeleted[0].DeletedAt)
		assert.Equal(t, []uint{1, 2}, ids(r.All()))
	})

	t.Run("多规格模式新增与保留", func(t *testing.T) {
		existing := variants(1, 2)
		normalized := []*Variant{existing[1], {}, {}}

		r, err := Reconcile(existing, normalized, true, now)
		require.NoError(t, err)
		assert.Len(t, r.Persist, 3)
		assert.Equal(t, []uint{1}, ids(r.SoftDeleted))
	})

	t.Run("多规格模式空集合软删除全部", func(t *testing.T) {
		existing := variants(1, 2, 3)

		r, err := Reconcile(existing, nil, true, now)
		require.NoError(t, err)
		assert.Empty(t, r.Persist)
		assert.Equal(t, []uint{1, 2, 3}, ids(r.SoftDeleted))
	})

	t.Run("单规格模式只保留第一个", func(t *testing.T) {
		existing := variants(1, 2)
		normalized := []*Variant{existing[1], {}, existing[0]}

		r, err := Reconcile(existing, normalized, false, now)
		require.NoError(t, err)
		assert.Equal(t, []uint{2}, ids(r.Persist))
		assert.Equal(t, []uint{1}, ids(r.SoftDeleted))
	})

	t.Run("单规格模式新规格替换旧规格", func(t *testing.T) {
		existing := variants(7)

		r, err := Reconcile(existing, []*Variant{{}}, false, now)
		require.NoError(t, err)
		require.Len(t, r.Persist, 1)
		assert.True(t, r.Persist[0].IsNew())
		assert.Equal(t, []uint{7}, ids(r.SoftDeleted))
	})

	t.Run("单规格模式必须提供规格", func(t *testing.T) {
		_, err := Reconcile(variants(1), nil, false, now)
		assert.ErrorIs(t, err, ErrVariantsRequired)
	})

	t.Run("已删除的旧规格不重复处理", func(t *testing.T) {
		existing := variants(1, 2)
		earlier := now.Add(-time.Hour)
		existing[1].DeletedAt = &earlier

		r, err := Reconcile(existing, []*Variant{existing[0]}, true, now)
		require.NoError(t, err)
		assert.Empty(t, r.SoftDeleted)
		assert.Equal(t, earlier, *existing[1].DeletedAt)
	})
}
