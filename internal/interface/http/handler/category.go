package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/catalog/internal/application/category"
	"github.com/xiebiao/catalog/internal/domain/category"
	"github.com/xiebiao/catalog/internal/interface/http/dto"
	"github.com/xiebiao/catalog/pkg/response"
)

// CategoryHandler 分类
type CategoryHandler struct {
	useCase *appcategory.UseCase
}

func NewCategoryHandler(useCase *appcategory.UseCase) *CategoryHandler {
	return &CategoryHandler{useCase: useCase}
}

// Create 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类"
// @Success      201 {object} response.Response{data=int} "新分类ID"
// @Failure      400 {object} response.ErrorResponse "not found parent category / category name is used"
// @Failure      401 {object} response.ErrorResponse
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.useCase.Create(c.Request.Context(), appcategory.CreateRequest{Name: req.Name, ParentID: req.ParentID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, id)
}

// Update 部分更新分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=int}
// @Failure      400 {object} response.ErrorResponse "成环或名称重复"
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/categories/{id} [patch]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.useCase.Update(c.Request.Context(), id, category.UpdatePatch{Name: req.Name, ParentID: req.ParentID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// Get 分类详情（含父分类和子分类）
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcategory.View}
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Param        searchKey query string false "名称包含"
// @Param        page query int false "页码"
// @Param        size query int false "每页数量"
// @Param        all query string false "1表示不分页"
// @Param        parentId query int false "父分类ID"
// @Success      200 {object} response.ListResponse{data=[]appcategory.View}
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	q, err := bindList(c, "parentId")
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.useCase.List(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, page)
}

// Delete 软删除分类
// @Summary      删除分类
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
