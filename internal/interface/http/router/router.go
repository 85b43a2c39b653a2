// Package router 组装gin引擎：中间件、路由、HTML模板、/metrics、/swagger
package router

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookshop/docs" // 注册swagger文档
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// New 创建并配置Gin引擎
// 中间件顺序：Recovery → Tracing（生成trace_id）→ RequestLogger（日志带trace_id）→ Metrics
func New(
	cfg *config.Config,
	log zerolog.Logger,
	bookHandler *handler.BookHandler,
	customerHandler *handler.CustomerHandler,
	orderHandler *handler.OrderHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.Use(gin.Recovery())
	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.RequestLogger(log))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档 http://localhost:8000/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	books := r.Group("/books")
	{
		books.POST("/new", bookHandler.CreateBook)
		books.GET("/price", bookHandler.GetBookPrice)
	}

	customers := r.Group("/customers")
	{
		customers.POST("/new", customerHandler.CreateCustomer)
		customers.POST("/updateAddress", customerHandler.UpdateAddress)
		customers.GET("/balance", customerHandler.GetBalance)
	}

	orders := r.Group("/orders")
	{
		orders.POST("/new", orderHandler.CreateOrder)
		orders.GET("/shipped", orderHandler.GetShipped)
		orders.PUT("/ship", orderHandler.ShipOrder)
		orders.GET("/status", orderHandler.GetStatus)
	}

	return r
}
