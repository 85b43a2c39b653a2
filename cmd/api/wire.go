//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 运行 `wire gen ./cmd/api` 生成wire_gen.go。
// buildApp（providers.go）是同一张依赖图的手写版本，改动Provider时两边一起改。

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/rs/zerolog"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/router"
)

// infrastructureSet 数据库、缓存、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	providePriceCache,
	provideEventPublisher,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	gormdb.NewBookRepository,
	gormdb.NewCustomerRepository,
	gormdb.NewOrderRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	book.NewService,
	customer.NewService,
	order.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookPriceUseCase,
	appcustomer.NewCreateCustomerUseCase,
	appcustomer.NewUpdateAddressUseCase,
	appcustomer.NewGetBalanceUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewGetShippedUseCase,
	apporder.NewShipOrderUseCase,
	apporder.NewGetStatusUseCase,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewCustomerHandler,
	handler.NewOrderHandler,
)

// InitializeApp 初始化整个应用
// 返回配置好的Gin引擎和释放连接的cleanup
func InitializeApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		router.New,
	)
	return nil, nil, nil
}
