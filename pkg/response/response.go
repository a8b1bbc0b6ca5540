package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

const (
	defaultData    = "ok"
	defaultMessage = "Success"
)

// Response 统一响应结构 {data, statusCode, message}
type Response struct {
	Data       interface{} `json:"data"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
}

// ListResponse 列表响应，all模式下不返回page/size
type ListResponse struct {
	Data       interface{} `json:"data"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Total      int64       `json:"total"`   // 实体未删除记录总数
	Matched    int64       `json:"matched"` // 满足过滤条件的记录数
	Page       *int        `json:"page,omitempty"`
	Size       *int        `json:"size,omitempty"`
}

// ErrorResponse 错误响应，error为HTTP状态文本（如"Bad Request"）
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// PageMeta 分页信息
type PageMeta struct {
	Total   int64
	Matched int64
	Page    int
	Size    int
	All     bool
}

func NewResponse(data interface{}, statusCode int) Response {
	if data == nil {
		data = defaultData
	}
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	return Response{
		Data:       data,
		StatusCode: statusCode,
		Message:    defaultMessage,
	}
}

// Success 200响应，data为nil时返回"ok"
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewResponse(data, http.StatusOK))
}

// Created 201响应，data为新记录ID
func Created(c *gin.Context, id uint) {
	c.JSON(http.StatusCreated, NewResponse(id, http.StatusCreated))
}

// CreatedMany 批量创建，data为新记录ID列表
func CreatedMany(c *gin.Context, ids []uint) {
	c.JSON(http.StatusCreated, NewResponse(ids, http.StatusCreated))
}

// SuccessWithPage 列表响应
func SuccessWithPage(c *gin.Context, list interface{}, meta PageMeta) {
	resp := ListResponse{
		Data:       list,
		StatusCode: http.StatusOK,
		Message:    defaultMessage,
		Total:      meta.Total,
		Matched:    meta.Matched,
	}
	if !meta.All {
		page, size := meta.Page, meta.Size
		resp.Page = &page
		resp.Size = &size
	}
	c.JSON(http.StatusOK, resp)
}

// Error 错误响应（自动处理AppError）
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.Err != nil {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(appErr.Err),
		)
	}

	status := appErr.HTTPStatus()
	c.JSON(status, ErrorResponse{
		StatusCode: status,
		Message:    appErr.Message,
		Error:      http.StatusText(status),
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}
