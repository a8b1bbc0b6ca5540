package handler

import (
	"github.com/gin-gonic/gin"

	appattribute "github.com/xiebiao/catalog/internal/application/attribute"
	"github.com/xiebiao/catalog/internal/interface/http/dto"
	"github.com/xiebiao/catalog/pkg/response"
)

// AttributeHandler 属性与属性可选值
type AttributeHandler struct {
	useCase *appattribute.UseCase
}

func NewAttributeHandler(useCase *appattribute.UseCase) *AttributeHandler {
	return &AttributeHandler{useCase: useCase}
}

// Create 创建属性
// @Summary      创建属性
// @Tags         属性
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAttributeRequest true "属性"
// @Success      201 {object} response.Response{data=int}
// @Failure      400 {object} response.ErrorResponse "atribute name is used"
// @Router       /api/v1/atributes [post]
func (h *AttributeHandler) Create(c *gin.Context) {
	var req dto.CreateAttributeRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.useCase.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, id)
}

// Update 修改属性名称
// @Summary      更新属性
// @Tags         属性
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "属性ID"
// @Param        request body dto.UpdateAttributeRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=int}
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/atributes/{id} [patch]
func (h *AttributeHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateAttributeRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.useCase.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// Get 属性详情（含可选值）
// @Summary      属性详情
// @Tags         属性
// @Produce      json
// @Param        id path int true "属性ID"
// @Success      200 {object} response.Response{data=appattribute.View}
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/atributes/{id} [get]
func (h *AttributeHandler) Get(c *gin.Context) {
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

// List 属性列表
// @Summary      属性列表
// @Tags         属性
// @Produce      json
// @Param        searchKey query string false "名称包含"
// @Param        page query int false "页码"
// @Param        size query int false "每页数量"
// @Param        all query string false "1表示不分页"
// @Success      200 {object} response.ListResponse{data=[]appattribute.View}
// @Router       /api/v1/atributes [get]
func (h *AttributeHandler) List(c *gin.Context) {
	q, err := bindList(c, "")
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

// Delete 软删除属性
// @Summary      删除属性
// @Tags         属性
// @Security     BearerAuth
// @Param        id path int true "属性ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/atributes/{id} [delete]
func (h *AttributeHandler) Delete(c *gin.Context) {
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

// AddOptions 批量添加可选值
// @Summary      批量添加属性可选值
// @Tags         属性
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "属性ID"
// @Param        request body dto.AddOptionsRequest true "可选值列表"
// @Success      201 {object} response.Response{data=[]int} "新可选值ID"
// @Failure      400 {object} response.ErrorResponse "not found atribute"
// @Router       /api/v1/atributes/{id}/options [post]
func (h *AttributeHandler) AddOptions(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AddOptionsRequest
	if !bindJSON(c, &req) {
		return
	}

	ids, err := h.useCase.AddOptions(c.Request.Context(), id, req.Data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.CreatedMany(c, ids)
}

// UpdateOption 修改可选值
// @Summary      更新属性可选值
// @Tags         属性可选值
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "可选值ID"
// @Param        request body dto.UpdateOptionRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=int}
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/atribute-options/{id} [patch]
func (h *AttributeHandler) UpdateOption(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateOptionRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.useCase.UpdateOption(c.Request.Context(), id, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// ListOptions 可选值列表
// @Summary      属性可选值列表
// @Tags         属性可选值
// @Produce      json
// @Param        searchKey query string false "值包含"
// @Param        page query int false "页码"
// @Param        size query int false "每页数量"
// @Param        all query string false "1表示不分页"
// @Param        atributeId query int false "属性ID"
// @Success      200 {object} response.ListResponse{data=[]appattribute.OptionView}
// @Router       /api/v1/atribute-options [get]
func (h *AttributeHandler) ListOptions(c *gin.Context) {
	q, err := bindList(c, "atributeId")
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.useCase.ListOptions(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, page)
}

// DeleteOption 软删除可选值
// @Summary      删除属性可选值
// @Tags         属性可选值
// @Security     BearerAuth
// @Param        id path int true "可选值ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/atribute-options/{id} [delete]
func (h *AttributeHandler) DeleteOption(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.useCase.DeleteOption(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
