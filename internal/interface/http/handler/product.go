package handler

import (
	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/catalog/internal/application/product"
	"github.com/xiebiao/catalog/internal/interface/http/dto"
	"github.com/xiebiao/catalog/pkg/response"
)

// ProductHandler 商品
type ProductHandler struct {
	create *appproduct.CreateProductUseCase
	update *appproduct.UpdateProductUseCase
	get    *appproduct.GetProductUseCase
	list   *appproduct.ListProductsUseCase
	remove *appproduct.DeleteProductUseCase
}

func NewProductHandler(
	create *appproduct.CreateProductUseCase,
	update *appproduct.UpdateProductUseCase,
	get *appproduct.GetProductUseCase,
	list *appproduct.ListProductsUseCase,
	remove *appproduct.DeleteProductUseCase,
) *ProductHandler {
	return &ProductHandler{create: create, update: update, get: get, list: list, remove: remove}
}

// Create 创建商品（含图片、属性、规格）
// @Summary      创建商品
// @Description  没有atributeIds时只保留第一个规格
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品"
// @Success      201 {object} response.Response{data=int} "新商品ID"
// @Failure      400 {object} response.ErrorResponse "not found category / product name is used / 规格选项不匹配"
// @Failure      401 {object} response.ErrorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.create.Execute(c.Request.Context(), appproduct.CreateProductRequest{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		ImageURLs:    req.ImageURLs,
		AttributeIDs: req.AtributeIDs,
		Variants:     dto.ToVariantSpecs(req.Variants),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, id)
}

// Update 部分更新商品
// @Summary      更新商品
// @Description  variants中未出现的旧规格会被软删除
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateProductRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=int}
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "not found this product"
// @Router       /api/v1/products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	in := appproduct.UpdateProductRequest{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		ImageURLs:    req.ImageURLs,
		AttributeIDs: req.AtributeIDs,
	}
	if req.Variants != nil {
		specs := dto.ToVariantSpecs(*req.Variants)
		in.Variants = &specs
	}

	updated, err := h.update.Execute(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, updated)
}

// Get 商品详情，包含已删除的商品和规格
// @Summary      商品详情
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=appproduct.ProductView}
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// List 商品列表
// @Summary      商品列表
// @Tags         商品
// @Produce      json
// @Param        searchKey query string false "名称包含"
// @Param        page query int false "页码"
// @Param        size query int false "每页数量"
// @Param        all query string false "1表示不分页"
// @Param        categoryId query int false "分类ID"
// @Success      200 {object} response.ListResponse{data=[]appproduct.ProductView}
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	q, err := bindList(c, "categoryId")
	if err != nil {
		response.Error(c, err)
		return
	}

	page, err := h.list.Execute(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	writePage(c, page)
}

// Delete 软删除商品
// @Summary      删除商品
// @Tags         商品
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.ErrorResponse
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
