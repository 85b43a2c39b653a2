package main

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	"github.com/xiebiao/bookshop/internal/application/event"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/router"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// buildApp 手动依赖注入
// 依赖链：Repository ← Service ← UseCase ← Handler ← Router
// 返回的cleanup按创建的逆序释放数据库、Redis、MQ连接
func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gin.Engine, func(), error) {
	// 基础设施层
	db, cleanupDB, err := provideDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	priceCache, cleanupCache := providePriceCache(ctx, cfg, log)
	publisher, cleanupMQ := provideEventPublisher(cfg, log)
	cleanup := func() {
		cleanupMQ()
		cleanupCache()
		cleanupDB()
	}

	// 仓储层
	bookRepo := gormdb.NewBookRepository(db)
	customerRepo := gormdb.NewCustomerRepository(db)
	orderRepo := gormdb.NewOrderRepository(db)

	// 领域层
	bookService := book.NewService(bookRepo)
	customerService := customer.NewService(customerRepo)
	orderService := order.NewService(orderRepo)

	// 应用层
	createBook := appbook.NewCreateBookUseCase(bookService, publisher)
	getBookPrice := appbook.NewGetBookPriceUseCase(bookService, priceCache)
	createCustomer := appcustomer.NewCreateCustomerUseCase(customerService, publisher)
	updateAddress := appcustomer.NewUpdateAddressUseCase(customerService, publisher)
	getBalance := appcustomer.NewGetBalanceUseCase(customerService)
	createOrder := apporder.NewCreateOrderUseCase(orderService, customerService, bookService, publisher)
	getShipped := apporder.NewGetShippedUseCase(orderService)
	shipOrder := apporder.NewShipOrderUseCase(orderService, publisher)
	getStatus := apporder.NewGetStatusUseCase(orderService, customerService)

	// 接口层
	bookHandler := handler.NewBookHandler(createBook, getBookPrice)
	customerHandler := handler.NewCustomerHandler(createCustomer, updateAddress, getBalance)
	orderHandler := handler.NewOrderHandler(createOrder, getShipped, shipOrder, getStatus)

	return router.New(cfg, log, bookHandler, customerHandler, orderHandler), cleanup, nil
}

// provideDB 创建数据库连接
func provideDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	db, err := gormdb.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// providePriceCache 价格缓存
// Redis未启用或连不上时退化为不缓存，服务照常启动
func providePriceCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (appbook.PriceCache, func()) {
	if !cfg.Redis.Enabled {
		return appbook.NopPriceCache{}, func() {}
	}

	client, err := redis.NewClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis不可用，价格查询不走缓存")
		return appbook.NopPriceCache{}, func() {}
	}

	breaker := newCacheBreaker(cfg.Redis.Breaker, log)
	cache := appbook.NewGuardedPriceCache(redis.NewPriceCache(client, cfg.Redis.PriceTTL), breaker)
	return cache, func() { _ = client.Close() }
}

// newCacheBreaker 保护Redis调用的熔断器，状态变化写日志和指标
func newCacheBreaker(cfg config.BreakerConfig, log zerolog.Logger) *circuitbreaker.CircuitBreaker {
	const name = "price-cache"
	metrics.SetGaugeVec(metrics.CircuitBreakerState, prometheus.Labels{"name": name}, float64(circuitbreaker.StateClosed))

	return circuitbreaker.New(name, circuitbreaker.Config{
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			// 调用方取消不算Redis故障
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("熔断器状态变化")
			metrics.SetGaugeVec(metrics.CircuitBreakerState, prometheus.Labels{"name": name}, float64(to))
		},
	})
}

// provideEventPublisher 领域事件发布者
// MQ未启用或连不上时丢弃事件
func provideEventPublisher(cfg *config.Config, log zerolog.Logger) (event.Publisher, func()) {
	if !cfg.MQ.Enabled {
		return event.NopPublisher{}, func() {}
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, mq.ExchangeTypeTopic, log)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ不可用，领域事件不会发布")
		return event.NopPublisher{}, func() {}
	}
	return publisher, func() { _ = publisher.Close() }
}
