package order

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xiebiao/bookshop/internal/application/event"
	"github.com/xiebiao/bookshop/internal/domain/field"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// ShipOrderUseCase 发货用例
// shipped只能从false变为true一次，重复发货返回ErrAlreadyShipped(409)
type ShipOrderUseCase struct {
	orderService order.Service
	events       event.Publisher
}

// NewShipOrderUseCase 创建发货用例
func NewShipOrderUseCase(orderService order.Service, events event.Publisher) *ShipOrderUseCase {
	return &ShipOrderUseCase{orderService: orderService, events: events}
}

// ShipOrderRequest 发货请求DTO
type ShipOrderRequest struct {
	ID *int64
}

// Execute 执行发货
func (uc *ShipOrderUseCase) Execute(ctx context.Context, req ShipOrderRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ShipOrder")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	id, err := field.ID("id", req.ID)
	if err != nil {
		return err
	}

	if err := uc.orderService.Ship(ctx, id); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int64("order_id", id).Msg("订单已发货")
	metrics.IncCounter(metrics.OrdersShippedTotal)

	event.Emit(ctx, uc.events, event.OrderShipped, event.OrderShippedEvent{OrderID: id})
	return nil
}
