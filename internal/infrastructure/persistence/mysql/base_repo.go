package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/catalog/internal/domain/shared"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

// listSpec 列表查询配置
type listSpec struct {
	searchColumn  string                     // 子串匹配字段，区分大小写
	foreignColumn string                     // ForeignID 等值过滤字段，为空表示不支持
	preload       func(db *gorm.DB) *gorm.DB // 关联预加载
}

// listResult 分页查询结果
type listResult[M any] struct {
	items   []M
	total   int64
	matched int64
}

// paginate 通用分页
//
// total 为实体全部未删除记录数，matched 为过滤后的记录数；
// all 模式不加 offset/limit
func paginate[M any](ctx context.Context, db *gorm.DB, q shared.ListQuery, spec listSpec) (*listResult[M], error) {
	db = getDB(ctx, db)

	filter := func(tx *gorm.DB) *gorm.DB {
		if q.SearchKey != "" && spec.searchColumn != "" {
			tx = tx.Scopes(containsScope(spec.searchColumn, q))
		}
		if q.ForeignID != nil && spec.foreignColumn != "" {
			tx = tx.Where(spec.foreignColumn+" = ?", *q.ForeignID)
		}
		return tx
	}

	var res listResult[M]
	if err := db.Model(new(M)).Count(&res.total).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询总数失败")
	}
	if err := db.Model(new(M)).Scopes(filter).Count(&res.matched).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询匹配数失败")
	}

	query := db.Scopes(filter).Order("id ASC")
	if spec.preload != nil {
		query = query.Scopes(spec.preload)
	}
	if !q.All {
		query = query.Offset(q.Skip()).Limit(q.Take())
	}

	if err := query.Find(&res.items).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询列表失败")
	}
	return &res, nil
}

// containsScope 区分大小写的子串匹配
// MySQL 默认 _ci 排序规则和 SQLite 的 LIKE 都忽略大小写，
// MySQL 用二进制排序规则比较，其余方言用 instr
func containsScope(column string, q shared.ListQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if tx.Dialector.Name() == "mysql" {
			return tx.Where(column+" LIKE ? COLLATE utf8mb4_bin", q.Pattern())
		}
		return tx.Where("instr("+column+", ?) > 0", q.SearchKey)
	}
}

// toPage 模型列表转为领域分页结果
func toPage[M, E any](q shared.ListQuery, res *listResult[M], convert func(*M) E) *shared.Page[E] {
	items := make([]E, len(res.items))
	for i := range res.items {
		items[i] = convert(&res.items[i])
	}
	return shared.NewPage(q, items, res.total, res.matched)
}

// findByID 查询未删除记录，不存在时返回notFound
func findByID[M any](db *gorm.DB, id uint, notFound error, scopes ...func(*gorm.DB) *gorm.DB) (*M, error) {
	var model M
	if err := db.Scopes(scopes...).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, notFound
		}
		return nil, apperrors.Wrap(err, "查询记录失败")
	}
	return &model, nil
}

// idsByColumn 字段等值匹配的未删除记录ID
func idsByColumn[M any](db *gorm.DB, column, value string) ([]uint, error) {
	var ids []uint
	if err := db.Model(new(M)).Where(column+" = ?", value).Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询记录失败")
	}
	return ids, nil
}

// softDelete 软删除，记录不存在时返回notFound
func softDelete[M any](db *gorm.DB, id uint, notFound error) error {
	result := db.Delete(new(M), id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除记录失败")
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}
