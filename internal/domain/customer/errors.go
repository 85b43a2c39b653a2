package customer

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 客户领域错误定义
var (
	// ErrCustomerNotFound 客户不存在
	ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "客户不存在")

	// ErrCustomerExists 同名客户已存在
	ErrCustomerExists = apperrors.New(apperrors.ErrCodeCustomerDuplicate, "客户已存在")
)
