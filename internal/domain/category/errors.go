package category

import (
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

// 分类领域错误定义
var (
	ErrCategoryNotFound = apperrors.NotFound("category")
	ErrInvalidName      = apperrors.New(apperrors.ErrCodeInvalidParams, "category name must be 1-30 characters")
	ErrCategoryCycle    = apperrors.New(apperrors.ErrCodeCategoryCycle, "category cannot be its own ancestor")
	ErrCategoryTooDeep  = apperrors.New(apperrors.ErrCodeCategoryCycle, "category tree is too deep")
)
