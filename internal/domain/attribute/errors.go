package attribute

import (
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

// 属性领域错误定义
var (
	ErrAttributeNotFound  = apperrors.NotFound("atribute")
	ErrOptionNotFound     = apperrors.NotFound("atribute option")
	ErrInvalidName        = apperrors.New(apperrors.ErrCodeInvalidParams, "atribute name is required")
	ErrEmptyOptions       = apperrors.New(apperrors.ErrCodeInvalidParams, "at least one option value is required")
	ErrInvalidOptionValue = apperrors.New(apperrors.ErrCodeInvalidParams, "option value is required")
)
