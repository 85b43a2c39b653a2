package dto

// CreateOrderRequest 下单
type CreateOrderRequest struct {
	CustomerID *int64 `json:"customer_id" form:"customer_id" example:"1"`
	BookID     *int64 `json:"book_id" form:"book_id" example:"1"`
}

// ShippedRequest 按(customer_id, book_id)查询发货状态
type ShippedRequest struct {
	CustomerID *int64 `json:"customer_id" form:"customer_id" example:"1"`
	BookID     *int64 `json:"book_id" form:"book_id" example:"1"`
}

// ShippedResponse 发货状态
type ShippedResponse struct {
	Shipped bool `json:"shipped" example:"false"`
}

// OrderIDRequest 按订单ID操作（发货、查询状态）
type OrderIDRequest struct {
	ID *int64 `json:"id" form:"id" example:"1"`
}

// OrderStatusView 订单状态页面数据
type OrderStatusView struct {
	OrderID         int64
	BookID          int64
	CustomerID      int64
	ShippingAddress string
}
