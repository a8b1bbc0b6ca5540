package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 统一业务错误
// Code为业务错误码，HTTP状态码由Code推导（见HTTPStatus）
type AppError struct {
	Code    int    `json:"code"`    // 业务错误码
	Message string `json:"message"` // 返回给调用方的提示
	Err     error  `json:"-"`       // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码和消息比较，errors.Is(err, Conflict("x")) 对新构造的实例同样成立
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// HTTPStatus 业务错误码 -> HTTP状态码
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code == ErrCodeNotFound:
		return http.StatusNotFound
	case e.Code >= 40100 && e.Code < 40200:
		return http.StatusUnauthorized
	case e.Code >= 40000 && e.Code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装底层错误为内部错误
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// 错误码
const (
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误

	ErrCodeUnauthorized = 40100 // 未登录
	ErrCodeInvalidToken = 40101 // Token无效
	ErrCodeTokenExpired = 40102 // Token过期
	ErrCodeTokenRevoked = 40103 // Token已注销

	ErrCodeNotFound = 40400 // 按ID查询的资源不存在

	ErrCodeBusinessError         = 40000 // 业务错误(通用)
	ErrCodeDuplicateEntry        = 40009 // 唯一值已被占用
	ErrCodeReferenceNotFound     = 40010 // 引用的记录不存在
	ErrCodeVariantOptionMismatch = 40011 // 规格选项与商品属性不匹配
	ErrCodeCategoryCycle         = 40012 // 分类父子关系成环
	ErrCodeVariantsRequired      = 40013 // 缺少规格

	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// 预定义错误
var (
	ErrInternal      = New(ErrCodeInternal, "internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "database error")
	ErrRedisError    = New(ErrCodeRedisError, "cache error")

	ErrUnauthorized = New(ErrCodeUnauthorized, "unauthorized")
	ErrInvalidToken = New(ErrCodeInvalidToken, "invalid token")
	ErrTokenExpired = New(ErrCodeTokenExpired, "token expired")
	ErrTokenRevoked = New(ErrCodeTokenRevoked, "token revoked")

	ErrInvalidParams = New(ErrCodeInvalidParams, "invalid params")
	ErrBindError     = New(ErrCodeBindError, "invalid request body")
)

// NotFound 按ID查询失败: "not found this <entity>"
func NotFound(entity string) *AppError {
	return New(ErrCodeNotFound, "not found this "+entity)
}

// ReferenceNotFound 引用校验失败: "not found <target>"
func ReferenceNotFound(target string) *AppError {
	return New(ErrCodeReferenceNotFound, "not found "+target)
}

// Conflict 唯一性冲突: "<target> is used"
func Conflict(target string) *AppError {
	return New(ErrCodeDuplicateEntry, target+" is used")
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// HasCode 判断错误链中是否存在指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetAppError 取出AppError，非业务错误统一视为内部错误
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal server error")
}
