package book

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/field"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

// GetBookPriceUseCase 按书名和作者查询图书
// 流程（Cache-Aside）:
//  1. 规范化title/author
//  2. 查缓存，命中直接返回
//  3. 未命中、缓存出错或熔断时查数据库，查到后回填缓存
//
// 缓存只是加速手段，任何缓存错误都不会让请求失败
type GetBookPriceUseCase struct {
	bookService book.Service
	cache       PriceCache
}

// NewGetBookPriceUseCase 创建价格查询用例，cache为nil时不使用缓存
func NewGetBookPriceUseCase(bookService book.Service, cache PriceCache) *GetBookPriceUseCase {
	if cache == nil {
		cache = NopPriceCache{}
	}
	return &GetBookPriceUseCase{
		bookService: bookService,
		cache:       cache,
	}
}

// GetBookPriceRequest 价格查询请求DTO
type GetBookPriceRequest struct {
	Title  *string
	Author *string
}

// BookResponse 图书响应DTO
type BookResponse struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
}

// Execute 执行价格查询
func (uc *GetBookPriceUseCase) Execute(ctx context.Context, req GetBookPriceRequest) (_ *BookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBookPrice")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	title, err := field.Title(req.Title)
	if err != nil {
		return nil, err
	}
	author, err := field.Author(req.Author)
	if err != nil {
		return nil, err
	}

	log := zerolog.Ctx(ctx)

	// 1. 查缓存
	cached, hit, cacheErr := uc.cache.Get(ctx, title, author)
	recordCacheResult(hit, cacheErr)
	switch {
	case cacheErr != nil && !errors.Is(cacheErr, circuitbreaker.ErrOpenState):
		log.Warn().Err(cacheErr).Msg("读取价格缓存失败，回源数据库")
	case hit:
		return toBookResponse(cached), nil
	}

	// 2. 查数据库
	b, err := uc.bookService.GetBook(ctx, title, author)
	if err != nil {
		return nil, err
	}

	// 3. 回填缓存
	if err := uc.cache.Set(ctx, b); err != nil && !errors.Is(err, circuitbreaker.ErrOpenState) {
		log.Warn().Err(err).Int64("book_id", b.ID).Msg("写入价格缓存失败")
	}

	return toBookResponse(b), nil
}

func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Price:  b.Price,
	}
}

// recordCacheResult 缓存结果计数：hit/miss/error/skipped(熔断)
func recordCacheResult(hit bool, err error) {
	result := "miss"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "skipped"
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	metrics.IncCounterVec(metrics.CacheRequestsTotal, prometheus.Labels{"result": result})
}
