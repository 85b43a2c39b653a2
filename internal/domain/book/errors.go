package book

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBookExists 同名同作者的图书已存在
	ErrBookExists = apperrors.New(apperrors.ErrCodeBookDuplicate, "图书已存在")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.WithCause(apperrors.ErrCodeOutOfRange, apperrors.ErrOutOfRange, "price 必须大于等于 0.01")
)
