package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/application/event"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/metrics/metricstest"
)

func strPtr(s string) *string      { return &s }
func floatPtr(f float64) *float64 { return &f }

type mockBookService struct {
	mock.Mock
}

func (m *mockBookService) AddBook(ctx context.Context, title, author string, price float64) (*book.Book, error) {
	args := m.Called(ctx, title, author, price)
	if b, ok := args.Get(0).(*book.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookService) GetBookByID(ctx context.Context, id int64) (*book.Book, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*book.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookService) GetBook(ctx context.Context, title, author string) (*book.Book, error) {
	args := m.Called(ctx, title, author)
	if b, ok := args.Get(0).(*book.Book); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ interface{}) error {
	p.keys = append(p.keys, key)
	return nil
}

// memoryCache 内存缓存，可注入错误
type memoryCache struct {
	items  map[string]*book.Book
	getErr error
	sets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]*book.Book)}
}

func (c *memoryCache) Get(_ context.Context, title, author string) (*book.Book, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	b, ok := c.items[title+"|"+author]
	return b, ok, nil
}

func (c *memoryCache) Set(_ context.Context, b *book.Book) error {
	c.sets++
	c.items[b.Title+"|"+b.Author] = b
	return nil
}

var gatsby = &book.Book{ID: 1, Title: "The Great Gatsby", Author: "F Scott Fitzgerald", Price: 9.99}

func TestCreateBook_NormalizesAndPublishes(t *testing.T) {
	metrics.InitMetrics()
	before := metricstest.CounterValue(t, metrics.BooksCreatedTotal)

	ctx := context.Background()
	svc := new(mockBookService)
	svc.On("AddBook", mock.Anything, "The Great Gatsby", "F Scott Fitzgerald", 9.99).Return(gatsby, nil).Once()
	pub := &recordingPublisher{}

	err := NewCreateBookUseCase(svc, pub).Execute(ctx, CreateBookRequest{
		Title:  strPtr("  the GREAT   gatsby"),
		Author: strPtr("f scott fitzgerald"),
		Price:  floatPtr(9.99),
	})
	require.NoError(t, err)
	svc.AssertExpectations(t)
	assert.Equal(t, []string{event.BookCreated}, pub.keys)
	assert.Equal(t, before+1, metricstest.CounterValue(t, metrics.BooksCreatedTotal))
}

func TestCreateBook_ValidationSkipsStore(t *testing.T) {
	tests := []struct {
		name string
		req  CreateBookRequest
		want error
	}{
		{"缺少title", CreateBookRequest{Author: strPtr("a"), Price: floatPtr(1)}, apperrors.ErrMissingField},
		{"缺少price", CreateBookRequest{Title: strPtr("t"), Author: strPtr("a")}, apperrors.ErrMissingField},
		{"非法字符", CreateBookRequest{Title: strPtr("t!"), Author: strPtr("a"), Price: floatPtr(1)}, apperrors.ErrInvalidCharacter},
		{"价格过低", CreateBookRequest{Title: strPtr("t"), Author: strPtr("a"), Price: floatPtr(0.001)}, apperrors.ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockBookService)
			pub := &recordingPublisher{}

			err := NewCreateBookUseCase(svc, pub).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			svc.AssertNotCalled(t, "AddBook", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			assert.Empty(t, pub.keys)
		})
	}
}

func TestCreateBook_Duplicate(t *testing.T) {
	svc := new(mockBookService)
	svc.On("AddBook", mock.Anything, "Dune", "Frank Herbert", 5.0).Return(nil, book.ErrBookExists)
	pub := &recordingPublisher{}

	err := NewCreateBookUseCase(svc, pub).Execute(context.Background(), CreateBookRequest{
		Title: strPtr("dune"), Author: strPtr("frank herbert"), Price: floatPtr(5),
	})
	assert.ErrorIs(t, err, book.ErrBookExists)
	assert.Empty(t, pub.keys)
}

func TestGetBookPrice_MissThenHit(t *testing.T) {
	svc := new(mockBookService)
	svc.On("GetBook", mock.Anything, "The Great Gatsby", "F Scott Fitzgerald").Return(gatsby, nil).Once()
	cache := newMemoryCache()
	uc := NewGetBookPriceUseCase(svc, cache)
	req := GetBookPriceRequest{Title: strPtr("the great gatsby"), Author: strPtr("F SCOTT  fitzgerald")}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 9.99, first.Price)
	assert.Equal(t, 1, cache.sets)

	// 第二次命中缓存，不再访问数据库（Once）
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	svc.AssertExpectations(t)
}

func TestGetBookPrice_CacheErrorFallsThrough(t *testing.T) {
	svc := new(mockBookService)
	svc.On("GetBook", mock.Anything, "The Great Gatsby", "F Scott Fitzgerald").Return(gatsby, nil)
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")

	got, err := NewGetBookPriceUseCase(svc, cache).Execute(context.Background(), GetBookPriceRequest{
		Title: strPtr("The Great Gatsby"), Author: strPtr("F Scott Fitzgerald"),
	})
	require.NoError(t, err)
	assert.Equal(t, &BookResponse{ID: 1, Title: "The Great Gatsby", Author: "F Scott Fitzgerald", Price: 9.99}, got)
}

func TestGetBookPrice_NotFound(t *testing.T) {
	svc := new(mockBookService)
	svc.On("GetBook", mock.Anything, "Missing", "Nobody").Return(nil, book.ErrBookNotFound)

	_, err := NewGetBookPriceUseCase(svc, nil).Execute(context.Background(), GetBookPriceRequest{
		Title: strPtr("missing"), Author: strPtr("nobody"),
	})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestGuardedPriceCache_OpensAfterFailures(t *testing.T) {
	metrics.InitMetrics()
	now := time.Unix(0, 0)
	breaker := circuitbreaker.New("price-cache-test", circuitbreaker.Config{
		Timeout:     time.Minute,
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
		Now:         func() time.Time { return now },
	})
	inner := newMemoryCache()
	inner.getErr = errors.New("i/o timeout")
	cache := NewGuardedPriceCache(inner, breaker)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _, err := cache.Get(ctx, "A", "B")
		assert.EqualError(t, err, "i/o timeout")
	}
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())

	_, _, err := cache.Get(ctx, "A", "B")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.ErrorIs(t, cache.Set(ctx, gatsby), circuitbreaker.ErrOpenState)
	assert.Zero(t, inner.sets)

	rejected := prometheus.Labels{"name": "price-cache-test", "result": "rejected"}
	assert.Equal(t, 2.0, metricstest.CounterVecValue(t, metrics.CircuitBreakerRequests, rejected))

	// 超时后半开，探测成功恢复
	now = now.Add(2 * time.Minute)
	inner.getErr = nil
	_, hit, err := cache.Get(ctx, "A", "B")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, circuitbreaker.StateClosed, breaker.State())
}

func TestGetBookPrice_OpenBreakerGoesToStore(t *testing.T) {
	breaker := circuitbreaker.New("price-cache-open", circuitbreaker.Config{
		Timeout:     time.Hour,
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 1 },
	})
	inner := newMemoryCache()
	inner.getErr = errors.New("down")
	cache := NewGuardedPriceCache(inner, breaker)
	_, _, _ = cache.Get(context.Background(), "x", "y")
	require.Equal(t, circuitbreaker.StateOpen, breaker.State())

	svc := new(mockBookService)
	svc.On("GetBook", mock.Anything, "The Great Gatsby", "F Scott Fitzgerald").Return(gatsby, nil).Once()

	got, err := NewGetBookPriceUseCase(svc, cache).Execute(context.Background(), GetBookPriceRequest{
		Title: strPtr("The Great Gatsby"), Author: strPtr("F Scott Fitzgerald"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	svc.AssertExpectations(t)
}
