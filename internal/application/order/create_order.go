package order

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xiebiao/bookshop/internal/application/event"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/field"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

const tracerName = "bookshop/application/order"

// CreateOrderUseCase 下单用例
// 流程:
//  1. 校验customer_id、book_id
//  2. 确认客户和图书都存在（不存在返回404，而不是等外键报错）
//  3. 插入订单，(customer_id, book_id)重复由唯一索引拒绝
//
// 每一步都是单表操作，不需要事务：客户和图书没有删除操作，检查通过后不会消失
type CreateOrderUseCase struct {
	orderService    order.Service
	customerService customer.Service
	bookService     book.Service
	events          event.Publisher
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderService order.Service,
	customerService customer.Service,
	bookService book.Service,
	events event.Publisher,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderService:    orderService,
		customerService: customerService,
		bookService:     bookService,
		events:          events,
	}
}

// CreateOrderRequest 下单请求DTO
type CreateOrderRequest struct {
	CustomerID *int64
	BookID     *int64
}

// Execute 执行下单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 1. 字段校验
	customerID, bookID, err := orderKey(req.CustomerID, req.BookID)
	if err != nil {
		return err
	}

	// 2. 引用检查
	if _, err := uc.customerService.GetByID(ctx, customerID); err != nil {
		return err
	}
	if _, err := uc.bookService.GetBookByID(ctx, bookID); err != nil {
		return err
	}

	// 3. 创建订单
	o, err := uc.orderService.PlaceOrder(ctx, customerID, bookID)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Int64("order_id", o.ID).
		Int64("customer_id", o.CustomerID).
		Int64("book_id", o.BookID).
		Msg("新增订单")
	metrics.IncCounter(metrics.OrdersCreatedTotal)

	event.Emit(ctx, uc.events, event.OrderCreated, event.OrderCreatedEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		BookID:     o.BookID,
	})
	return nil
}

// orderKey 校验订单自然键
func orderKey(customerID, bookID *int64) (int64, int64, error) {
	cid, err := field.ID("customer_id", customerID)
	if err != nil {
		return 0, 0, err
	}
	bid, err := field.ID("book_id", bookID)
	if err != nil {
		return 0, 0, err
	}
	return cid, bid, nil
}
