package book

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/xiebiao/bookshop/internal/application/event"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/field"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/tracing"
)

const tracerName = "bookshop/application/book"

// CreateBookUseCase 新增图书用例
// 设计说明:
// 1. 字段校验在这里完成（规范化title/author、price范围），不合法的请求不会访问数据库
// 2. (title, author)是否已存在由数据库唯一索引判断，重复时返回ErrBookExists
// 3. 成功后发布book.created事件
type CreateBookUseCase struct {
	bookService book.Service
	events      event.Publisher
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(bookService book.Service, events event.Publisher) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
		events:      events,
	}
}

// CreateBookRequest 新增图书请求DTO
// 字段为nil表示请求里没有这个字段
type CreateBookRequest struct {
	Title  *string
	Author *string
	Price  *float64
}

// Execute 执行新增图书
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	// 1. 字段校验
	title, err := field.Title(req.Title)
	if err != nil {
		return err
	}
	author, err := field.Author(req.Author)
	if err != nil {
		return err
	}
	price, err := field.Price(req.Price)
	if err != nil {
		return err
	}

	// 2. 持久化
	b, err := uc.bookService.AddBook(ctx, title, author, price)
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Int64("book_id", b.ID).
		Str("title", b.Title).
		Str("author", b.Author).
		Float64("price", b.Price).
		Msg("新增图书")
	metrics.IncCounter(metrics.BooksCreatedTotal)

	event.Emit(ctx, uc.events, event.BookCreated, event.BookCreatedEvent{
		BookID: b.ID,
		Title:  b.Title,
		Author: b.Author,
		Price:  b.Price,
	})
	return nil
}
