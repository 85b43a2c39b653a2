package dto

// CreateCustomerRequest 新增客户
type CreateCustomerRequest struct {
	Name            *string `json:"name" form:"name" example:"Jane Doe"`
	ShippingAddress *string `json:"shipping_address" form:"shipping_address" example:"1 Main St"`
}

// UpdateAddressRequest 修改收货地址
type UpdateAddressRequest struct {
	ID              *int64  `json:"id" form:"id" example:"1"`
	ShippingAddress *string `json:"shipping_address" form:"shipping_address" example:"42 Wallaby Way"`
}

// BalanceRequest 查询余额，姓名和地址都要匹配
type BalanceRequest struct {
	Name            *string `json:"name" form:"name" example:"Jane Doe"`
	ShippingAddress *string `json:"shipping_address" form:"shipping_address" example:"1 Main St"`
}

// BalanceResponse 余额
type BalanceResponse struct {
	AccountBalance float64 `json:"account_balance" example:"0"`
}
