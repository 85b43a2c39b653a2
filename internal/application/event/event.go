// Package event 领域事件
//
// 状态变更成功后发布一条事件（routing key形如 order.shipped）。
// 事件是旁路通知：发布失败只记日志和指标，不影响请求结果。
package event

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/xiebiao/bookshop/pkg/metrics"
)

// Routing key
const (
	BookCreated            = "book.created"
	CustomerCreated        = "customer.created"
	CustomerAddressUpdated = "customer.address_updated"
	OrderCreated           = "order.created"
	OrderShipped           = "order.shipped"
)

// Publisher 事件发布接口，pkg/mq.Publisher实现了它
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// NopPublisher 未启用MQ时使用
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

// BookCreatedEvent 新增图书
type BookCreatedEvent struct {
	BookID int64   `json:"book_id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
}

// CustomerCreatedEvent 新增客户
type CustomerCreatedEvent struct {
	CustomerID      int64  `json:"customer_id"`
	Name            string `json:"name"`
	ShippingAddress string `json:"shipping_address"`
}

// CustomerAddressUpdatedEvent 修改收货地址
type CustomerAddressUpdatedEvent struct {
	CustomerID      int64  `json:"customer_id"`
	ShippingAddress string `json:"shipping_address"`
}

// OrderCreatedEvent 下单
type OrderCreatedEvent struct {
	OrderID    int64 `json:"order_id"`
	CustomerID int64 `json:"customer_id"`
	BookID     int64 `json:"book_id"`
}

// OrderShippedEvent 发货
type OrderShippedEvent struct {
	OrderID int64 `json:"order_id"`
}

// Emit 发布事件，失败只记录不返回
func Emit(ctx context.Context, p Publisher, routingKey string, message interface{}) {
	if p == nil {
		return
	}
	result := "success"
	if err := p.Publish(ctx, routingKey, message); err != nil {
		result = "failure"
		zerolog.Ctx(ctx).Warn().Err(err).Str("routing_key", routingKey).Msg("领域事件发布失败")
	}
	metrics.IncCounterVec(metrics.EventsPublishedTotal, prometheus.Labels{
		"routing_key": routingKey,
		"result":      result,
	})
}
