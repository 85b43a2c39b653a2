package book

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// PriceCache 价格缓存接口
// 实现：infrastructure/persistence/redis.PriceCache
type PriceCache interface {
	// Get 未命中返回(nil, false, nil)
	Get(ctx context.Context, title, author string) (*book.Book, bool, error)
	Set(ctx context.Context, b *book.Book) error
}

// NopPriceCache 未启用Redis时使用，永远未命中
type NopPriceCache struct{}

// Get 永远未命中
func (NopPriceCache) Get(context.Context, string, string) (*book.Book, bool, error) {
	return nil, false, nil
}

// Set 什么也不做
func (NopPriceCache) Set(context.Context, *book.Book) error { return nil }

// GuardedPriceCache 用熔断器包一层的缓存
// Redis连续出错时熔断，熔断期间Get/Set直接返回circuitbreaker.ErrOpenState，不再访问Redis
type GuardedPriceCache struct {
	inner   PriceCache
	breaker *circuitbreaker.CircuitBreaker
}

// NewGuardedPriceCache 创建带熔断的缓存
func NewGuardedPriceCache(inner PriceCache, breaker *circuitbreaker.CircuitBreaker) *GuardedPriceCache {
	return &GuardedPriceCache{inner: inner, breaker: breaker}
}

// Get 熔断器保护下读取缓存
func (c *GuardedPriceCache) Get(ctx context.Context, title, author string) (*book.Book, bool, error) {
	var (
		b   *book.Book
		hit bool
	)
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		b, hit, err = c.inner.Get(ctx, title, author)
		return err
	})
	c.record(err)
	if err != nil {
		return nil, false, err
	}
	return b, hit, nil
}

// Set 熔断器保护下写入缓存
func (c *GuardedPriceCache) Set(ctx context.Context, b *book.Book) error {
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.inner.Set(ctx, b)
	})
	c.record(err)
	return err
}

func (c *GuardedPriceCache) record(err error) {
	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, prometheus.Labels{
		"name":   c.breaker.Name(),
		"result": result,
	})
}
