package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/field"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// GetShippedUseCase 按(customer_id, book_id)查询订单是否已发货
type GetShippedUseCase struct {
	orderService order.Service
}

// NewGetShippedUseCase 创建发货状态查询用例
func NewGetShippedUseCase(orderService order.Service) *GetShippedUseCase {
	return &GetShippedUseCase{orderService: orderService}
}

// GetShippedRequest 发货状态查询请求DTO
type GetShippedRequest struct {
	CustomerID *int64
	BookID     *int64
}

// ShippedResponse 发货状态响应DTO
type ShippedResponse struct {
	Shipped bool `json:"shipped"`
}

// Execute 执行查询
func (uc *GetShippedUseCase) Execute(ctx context.Context, req GetShippedRequest) (_ *ShippedResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetShipped")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	customerID, bookID, err := orderKey(req.CustomerID, req.BookID)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderService.GetByCustomerAndBook(ctx, customerID, bookID)
	if err != nil {
		return nil, err
	}
	return &ShippedResponse{Shipped: o.Shipped}, nil
}

// GetStatusUseCase 订单状态：订单、图书、客户ID以及客户当前的收货地址
type GetStatusUseCase struct {
	orderService    order.Service
	customerService customer.Service
}

// NewGetStatusUseCase 创建订单状态查询用例
func NewGetStatusUseCase(orderService order.Service, customerService customer.Service) *GetStatusUseCase {
	return &GetStatusUseCase{orderService: orderService, customerService: customerService}
}

// GetStatusRequest 订单状态请求DTO
type GetStatusRequest struct {
	ID *int64
}

// StatusResponse 订单状态，由HTML模板渲染
type StatusResponse struct {
	OrderID         int64
	BookID          int64
	CustomerID      int64
	ShippingAddress string
}

// Execute 执行查询
func (uc *GetStatusUseCase) Execute(ctx context.Context, req GetStatusRequest) (_ *StatusResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetStatus")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	id, err := field.ID("id", req.ID)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderService.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := uc.customerService.GetByID(ctx, o.CustomerID)
	if err != nil {
		return nil, err
	}

	return &StatusResponse{
		OrderID:         o.ID,
		BookID:          o.BookID,
		CustomerID:      o.CustomerID,
		ShippingAddress: c.ShippingAddress,
	}, nil
}
