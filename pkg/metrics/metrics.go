// Package metrics 基于Prometheus的指标
//
// 指标分三类:
//   - HTTP:请求数、耗时、并发数(middleware记录)
//   - 业务:图书/客户/订单的状态变更次数、被拒绝的输入
//   - 依赖:价格缓存命中率、熔断器状态、事件发布结果
//
// 命名规范:Counter以_total结尾,Histogram以单位结尾,标签只用有限取值(不要用ID做标签)。
//
// 使用示例:
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//	metrics.IncCounter(metrics.BooksCreatedTotal)
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数
	// 标签:method、path(路由模板,如/books/price)、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// BooksCreatedTotal 新增图书数
	BooksCreatedTotal prometheus.Counter

	// CustomersCreatedTotal 新增客户数
	CustomersCreatedTotal prometheus.Counter

	// AddressUpdatesTotal 修改收货地址次数
	AddressUpdatesTotal prometheus.Counter

	// OrdersCreatedTotal 下单数
	OrdersCreatedTotal prometheus.Counter

	// OrdersShippedTotal 发货数
	OrdersShippedTotal prometheus.Counter

	// RequestErrorsTotal 按错误码统计的失败请求
	// 标签:code(业务错误码)
	RequestErrorsTotal *prometheus.CounterVec

	// 依赖指标

	// CacheRequestsTotal 价格缓存请求
	// 标签:result(hit/miss/error/skipped)
	CacheRequestsTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求
	// 标签:name、result(success/failure/rejected)
	CircuitBreakerRequests *prometheus.CounterVec

	// EventsPublishedTotal 领域事件发布
	// 标签:routing_key、result(success/failure)
	EventsPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标,可重复调用
func InitMetrics() {
	initOnce.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP请求耗时（秒）",
			// 单表查询,绝大多数请求在10ms以内
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	BooksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_books_created_total",
		Help: "新增图书数",
	})

	CustomersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_customers_created_total",
		Help: "新增客户数",
	})

	AddressUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_address_updates_total",
		Help: "修改收货地址次数",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_orders_created_total",
		Help: "下单数",
	})

	OrdersShippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookshop_orders_shipped_total",
		Help: "发货数",
	})

	RequestErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshop_request_errors_total",
			Help: "按业务错误码统计的失败请求",
		},
		[]string{"code"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshop_price_cache_requests_total",
			Help: "价格缓存请求数",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookshop_events_published_total",
			Help: "领域事件发布数",
		},
		[]string{"routing_key", "result"},
	)
}

// IncCounter 递增Counter,未初始化时忽略
func IncCounter(counter prometheus.Counter) {
	if counter != nil {
		counter.Inc()
	}
}

// IncCounterVec 递增带标签的Counter,未初始化时忽略
func IncCounterVec(counter *prometheus.CounterVec, labels prometheus.Labels) {
	if counter != nil {
		counter.With(labels).Inc()
	}
}

// ObserveHistogramVec 记录带标签的观测值
func ObserveHistogramVec(h *prometheus.HistogramVec, labels prometheus.Labels, value float64) {
	if h != nil {
		h.With(labels).Observe(value)
	}
}

// SetGaugeVec 设置带标签的Gauge
func SetGaugeVec(g *prometheus.GaugeVec, labels prometheus.Labels, value float64) {
	if g != nil {
		g.With(labels).Set(value)
	}
}

// IncGauge 递增Gauge
func IncGauge(g prometheus.Gauge) {
	if g != nil {
		g.Inc()
	}
}

// DecGauge 递减Gauge
func DecGauge(g prometheus.Gauge) {
	if g != nil {
		g.Dec()
	}
}
