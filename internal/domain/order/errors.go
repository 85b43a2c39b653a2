package order

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrOrderExists 同一客户对同一本书已有订单
	ErrOrderExists = apperrors.New(apperrors.ErrCodeOrderDuplicate, "订单已存在")

	// ErrAlreadyShipped 订单已发货
	ErrAlreadyShipped = apperrors.New(apperrors.ErrCodeAlreadyShipped, "订单已发货")
)
