package field

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// MinPrice 最低价格
const MinPrice = 0.01

// 校验规则(validator/v10 tag)
const (
	priceRule = "gte=0.01"
	idRule    = "gt=0"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance validator.Validate会缓存规则解析结果，全局复用一个
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Title 校验书名
func Title(raw *string) (string, error) {
	return text("title", raw)
}

// Author 校验作者
func Author(raw *string) (string, error) {
	return text("author", raw)
}

// CustomerName 校验客户姓名
func CustomerName(raw *string) (string, error) {
	return text("name", raw)
}

// ShippingAddress 校验收货地址
func ShippingAddress(raw *string) (string, error) {
	return text("shipping_address", raw)
}

// Price 校验价格，必须 >= 0.01
func Price(raw *float64) (float64, error) {
	if raw == nil {
		return 0, missing("price")
	}
	if err := validatorInstance().Var(*raw, priceRule); err != nil {
		return 0, apperrors.WithCause(apperrors.ErrCodeOutOfRange, apperrors.ErrOutOfRange,
			fmt.Sprintf("price 必须大于等于 %.2f", MinPrice))
	}
	return *raw, nil
}

// ID 校验实体ID，必须 > 0
// name 是字段名(customer_id / book_id / id)，只用于错误提示
func ID(name string, raw *int64) (int64, error) {
	if raw == nil {
		return 0, missing(name)
	}
	if err := validatorInstance().Var(*raw, idRule); err != nil {
		return 0, apperrors.WithCause(apperrors.ErrCodeOutOfRange, apperrors.ErrOutOfRange,
			fmt.Sprintf("%s 必须大于 0", name))
	}
	return *raw, nil
}

func text(name string, raw *string) (string, error) {
	if raw == nil {
		return "", missing(name)
	}
	normalized, err := Normalize(*raw)
	if err != nil {
		return "", apperrors.WithCause(apperrors.ErrCodeInvalidCharacter, err,
			fmt.Sprintf("%s 只能包含字母、数字和空格", name))
	}
	return normalized, nil
}

func missing(name string) error {
	return apperrors.WithCause(apperrors.ErrCodeMissingField, apperrors.ErrMissingField,
		fmt.Sprintf("缺少字段: %s", name))
}
