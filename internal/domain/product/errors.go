package product

import (
	apperrors "github.com/xiebiao/catalog/pkg/errors"
)

// 商品领域错误定义
var (
	ErrProductNotFound = apperrors.NotFound("product")
	ErrVariantNotFound = apperrors.ReferenceNotFound("product variant")
	ErrInvalidName     = apperrors.New(apperrors.ErrCodeInvalidParams, "product name is required")
	ErrInvalidPrice    = apperrors.New(apperrors.ErrCodeInvalidParams, "variant price must not be negative")
	ErrInvalidStock    = apperrors.New(apperrors.ErrCodeInvalidParams, "variant stock must not be negative")

	ErrVariantsRequired = apperrors.New(apperrors.ErrCodeVariantsRequired, "product needs at least one variant")
	ErrDuplicateVariant = apperrors.New(apperrors.ErrCodeInvalidParams, "variant id appears more than once")

	ErrOptionNotInAttributes   = apperrors.New(apperrors.ErrCodeVariantOptionMismatch, "variant atribute is not declared on the product")
	ErrOptionAttributeMismatch = apperrors.New(apperrors.ErrCodeVariantOptionMismatch, "atribute option does not belong to the atribute")
	ErrDuplicateOptionChoice   = apperrors.New(apperrors.ErrCodeVariantOptionMismatch, "variant selects more than one option for an atribute")
)
