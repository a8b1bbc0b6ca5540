package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/catalog/internal/domain/shared"
	"github.com/xiebiao/catalog/internal/interface/http/dto"
	apperrors "github.com/xiebiao/catalog/pkg/errors"
	"github.com/xiebiao/catalog/pkg/response"
)

// parseID 路径参数 :id
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidParams, "invalid id")
	}
	return uint(id), nil
}

// bindList 绑定列表查询参数，foreignKey为外键过滤参数名（为空表示不支持）
func bindList(c *gin.Context, foreignKey string) (shared.ListQuery, error) {
	var req dto.ListQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		return shared.ListQuery{}, apperrors.New(apperrors.ErrCodeBindError, err.Error())
	}

	q := shared.ListQuery{
		SearchKey: req.SearchKey,
		Page:      req.Page,
		Size:      req.Size,
		All:       req.IsAll(),
	}

	if foreignKey != "" {
		if raw := c.Query(foreignKey); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return shared.ListQuery{}, apperrors.New(apperrors.ErrCodeInvalidParams, "invalid "+foreignKey)
			}
			fid := uint(id)
			q.ForeignID = &fid
		}
	}
	return q, nil
}

// bindJSON 绑定失败统一返回40901
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Error(c, apperrors.New(apperrors.ErrCodeBindError, err.Error()))
		return false
	}
	return true
}

func writePage[T any](c *gin.Context, page *shared.Page[T]) {
	response.SuccessWithPage(c, page.Items, response.PageMeta{
		Total:   page.Total,
		Matched: page.Matched,
		Page:    page.Page,
		Size:    page.Size,
		All:     page.All,
	})
}
