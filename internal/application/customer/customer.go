// Package customer 客户相关用例：注册、修改收货地址、查询余额
package customer

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xiebiao/bookshop/internal/application/event"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/field"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

const tracerName = "bookshop/application/customer"

// CreateCustomerUseCase 注册客户
// 同名客户已存在时返回ErrCustomerExists（唯一索引判断）
type CreateCustomerUseCase struct {
	customerService customer.Service
	events          event.Publisher
}

// NewCreateCustomerUseCase 创建注册客户用例
func NewCreateCustomerUseCase(customerService customer.Service, events event.Publisher) *CreateCustomerUseCase {
	return &CreateCustomerUseCase{customerService: customerService, events: events}
}

// CreateCustomerRequest 注册客户请求DTO
type CreateCustomerRequest struct {
	Name            *string
	ShippingAddress *string
}

// Execute 执行注册
func (uc *CreateCustomerUseCase) Execute(ctx context.Context, req CreateCustomerRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateCustomer")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	name, err := field.CustomerName(req.Name)
	if err != nil {
		return err
	}
	addr, err := field.ShippingAddress(req.ShippingAddress)
	if err != nil {
		return err
	}

	c, err := uc.customerService.Register(ctx, name, addr)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Int64("customer_id", c.ID).
		Str("name", c.Name).
		Str("shipping_address", c.ShippingAddress).
		Msg("新增客户")
	metrics.IncCounter(metrics.CustomersCreatedTotal)

	event.Emit(ctx, uc.events, event.CustomerCreated, event.CustomerCreatedEvent{
		CustomerID:      c.ID,
		Name:            c.Name,
		ShippingAddress: c.ShippingAddress,
	})
	return nil
}

// UpdateAddressUseCase 修改收货地址
// 新地址同样经过规范化；客户不存在返回ErrCustomerNotFound
type UpdateAddressUseCase struct {
	customerService customer.Service
	events          event.Publisher
}

// NewUpdateAddressUseCase 创建修改地址用例
func NewUpdateAddressUseCase(customerService customer.Service, events event.Publisher) *UpdateAddressUseCase {
	return &UpdateAddressUseCase{customerService: customerService, events: events}
}

// UpdateAddressRequest 修改地址请求DTO
type UpdateAddressRequest struct {
	ID              *int64
	ShippingAddress *string
}

// Execute 执行修改地址
func (uc *UpdateAddressUseCase) Execute(ctx context.Context, req UpdateAddressRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateAddress")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	id, err := field.ID("id", req.ID)
	if err != nil {
		return err
	}
	addr, err := field.ShippingAddress(req.ShippingAddress)
	if err != nil {
		return err
	}

	if err := uc.customerService.UpdateShippingAddress(ctx, id, addr); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Int64("customer_id", id).
		Str("shipping_address", addr).
		Msg("修改收货地址")
	metrics.IncCounter(metrics.AddressUpdatesTotal)

	event.Emit(ctx, uc.events, event.CustomerAddressUpdated, event.CustomerAddressUpdatedEvent{
		CustomerID:      id,
		ShippingAddress: addr,
	})
	return nil
}

// GetBalanceUseCase 查询账户余额
// 姓名和地址都必须与库中记录一致
type GetBalanceUseCase struct {
	customerService customer.Service
}

// NewGetBalanceUseCase 创建查询余额用例
func NewGetBalanceUseCase(customerService customer.Service) *GetBalanceUseCase {
	return &GetBalanceUseCase{customerService: customerService}
}

// GetBalanceRequest 查询余额请求DTO
type GetBalanceRequest struct {
	Name            *string
	ShippingAddress *string
}

// BalanceResponse 余额响应DTO
type BalanceResponse struct {
	AccountBalance float64 `json:"account_balance"`
}

// Execute 执行查询余额
func (uc *GetBalanceUseCase) Execute(ctx context.Context, req GetBalanceRequest) (_ *BalanceResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBalance")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	name, err := field.CustomerName(req.Name)
	if err != nil {
		return nil, err
	}
	addr, err := field.ShippingAddress(req.ShippingAddress)
	if err != nil {
		return nil, err
	}

	balance, err := uc.customerService.GetBalance(ctx, name, addr)
	if err != nil {
		return nil, err
	}
	return &BalanceResponse{AccountBalance: balance}, nil
}
