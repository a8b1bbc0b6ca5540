package product

import "time"

// Reconciliation 规格集合的调和结果
type Reconciliation struct {
	Persist     []*Variant // 需要新建或更新的规格
	SoftDeleted []*Variant // 已标记删除时间的旧规格
}

// All 写回商品的规格集合：保留的规格在前，软删除的在后
func (r Reconciliation) All() []*Variant {
	out := make([]*Variant, 0, len(r.Persist)+len(r.SoftDeleted))
	out = append(out, r.Persist...)
	return append(out, r.SoftDeleted...)
}

// Reconcile 计算从existing到normalized的规格变化
//
// multi为false（商品没有属性）时只保留第一个规格，其余旧规格全部软删除；
// multi为true时保留全部normalized，旧规格中ID不在其中的软删除。
// 旧规格只做软删除，不物理删除
func Reconcile(existing, normalized []*Variant, multi bool, now time.Time) (Reconciliation, error) {
	keep := normalized
	if !multi {
		if len(normalized) == 0 {
			return Reconciliation{}, ErrVariantsRequired
		}
		keep = normalized[:1]
	}

	kept := make(map[uint]bool, len(keep))
	for _, v := range keep {
		if !v.IsNew() {
			kept[v.ID] = true
		}
	}

	var removed []*Variant
	for _, v := range existing {
		if v.IsDeleted() || kept[v.ID] {
			continue
		}
		v.MarkDeleted(now)
		removed = append(removed, v)
	}

	return Reconciliation{Persist: keep, SoftDeleted: removed}, nil
}
