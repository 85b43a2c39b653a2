package order

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/application/event"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func idPtr(i int64) *int64 { return &i }

// fixture 已有客户1(Jane Doe)和图书1
type fixture struct {
	orders    *memoryOrderRepository
	customers customer.Service
	books     book.Service
	events    *recordingPublisher
}

func newFixture() *fixture {
	return &fixture{
		orders: &memoryOrderRepository{byID: make(map[int64]*order.PurchaseOrder)},
		customers: stubCustomerService{
			1: {ID: 1, Name: "Jane Doe", ShippingAddress: "1 Main St"},
		},
		books: stubBookService{
			1: {ID: 1, Title: "Dune", Author: "Frank Herbert", Price: 5},
		},
		events: &recordingPublisher{},
	}
}

func (f *fixture) create() *CreateOrderUseCase {
	return NewCreateOrderUseCase(order.NewService(f.orders), f.customers, f.books, f.events)
}

type memoryOrderRepository struct {
	mu     sync.Mutex
	byID   map[int64]*order.PurchaseOrder
	nextID int64
}

func (r *memoryOrderRepository) Create(_ context.Context, o *order.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.CustomerID == o.CustomerID && existing.BookID == o.BookID {
			return order.ErrOrderExists
		}
	}
	r.nextID++
	o.ID = r.nextID
	stored := *o
	r.byID[o.ID] = &stored
	return nil
}

func (r *memoryOrderRepository) FindByID(_ context.Context, id int64) (*order.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *memoryOrderRepository) FindByCustomerAndBook(_ context.Context, customerID, bookID int64) (*order.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.byID {
		if o.CustomerID == customerID && o.BookID == bookID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *memoryOrderRepository) MarkShipped(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return order.ErrOrderNotFound
	}
	return o.Ship()
}

type stubCustomerService map[int64]*customer.Customer

func (s stubCustomerService) Register(context.Context, string, string) (*customer.Customer, error) {
	panic("not used")
}

func (s stubCustomerService) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := s[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (s stubCustomerService) GetBalance(context.Context, string, string) (float64, error) {
	panic("not used")
}

func (s stubCustomerService) UpdateShippingAddress(context.Context, int64, string) error {
	panic("not used")
}

type stubBookService map[int64]*book.Book

func (s stubBookService) AddBook(context.Context, string, string, float64) (*book.Book, error) {
	panic("not used")
}

func (s stubBookService) GetBookByID(_ context.Context, id int64) (*book.Book, error) {
	b, ok := s[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (s stubBookService) GetBook(context.Context, string, string) (*book.Book, error) {
	panic("not used")
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func TestCreateOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.create().Execute(ctx, CreateOrderRequest{CustomerID: idPtr(1), BookID: idPtr(1)}))
	assert.Equal(t, []string{event.OrderCreated}, f.events.keys)

	err := f.create().Execute(ctx, CreateOrderRequest{CustomerID: idPtr(1), BookID: idPtr(1)})
	assert.ErrorIs(t, err, order.ErrOrderExists)
}

func TestCreateOrder_MissingReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.create().Execute(ctx, CreateOrderRequest{CustomerID: idPtr(2), BookID: idPtr(1)})
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)

	err = f.create().Execute(ctx, CreateOrderRequest{CustomerID: idPtr(1), BookID: idPtr(2)})
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	assert.Empty(t, f.orders.byID)
	assert.Empty(t, f.events.keys)
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.create().Execute(ctx, CreateOrderRequest{BookID: idPtr(1)}), apperrors.ErrMissingField)
	assert.ErrorIs(t, f.create().Execute(ctx, CreateOrderRequest{CustomerID: idPtr(1)}), apperrors.ErrMissingField)
	assert.ErrorIs(t, f.create().Execute(ctx, CreateOrderRequest{CustomerID: idPtr(-1), BookID: idPtr(1)}), apperrors.ErrOutOfRange)
}

func TestShipOrder_OnlyOnce(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.create().Execute(ctx, CreateOrderRequest{CustomerID: idPtr(1), BookID: idPtr(1)}))
	ship := NewShipOrderUseCase(order.NewService(f.orders), f.events)
	shipped := NewGetShippedUseCase(order.NewService(f.orders))

	got, err := shipped.Execute(ctx, GetShippedRequest{CustomerID: idPtr(1), BookID: idPtr(1)})
	require.NoError(t, err)
	assert.False(t, got.Shipped)

	require.NoError(t, ship.Execute(ctx, ShipOrderRequest{ID: idPtr(1)}))
	assert.ErrorIs(t, ship.Execute(ctx, ShipOrderRequest{ID: idPtr(1)}), order.ErrAlreadyShipped)
	assert.ErrorIs(t, ship.Execute(ctx, ShipOrderRequest{ID: idPtr(7)}), order.ErrOrderNotFound)

	got, err = shipped.Execute(ctx, GetShippedRequest{CustomerID: idPtr(1), BookID: idPtr(1)})
	require.NoError(t, err)
	assert.True(t, got.Shipped)
	assert.Equal(t, []string{event.OrderCreated, event.OrderShipped}, f.events.keys)
}

func TestGetShipped_NotFound(t *testing.T) {
	f := newFixture()
	_, err := NewGetShippedUseCase(order.NewService(f.orders)).Execute(context.Background(),
		GetShippedRequest{CustomerID: idPtr(1), BookID: idPtr(1)})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestGetStatus(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	require.NoError(t, f.create().Execute(ctx, CreateOrderRequest{CustomerID: idPtr(1), BookID: idPtr(1)}))

	uc := NewGetStatusUseCase(order.NewService(f.orders), f.customers)
	got, err := uc.Execute(ctx, GetStatusRequest{ID: idPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, &StatusResponse{OrderID: 1, BookID: 1, CustomerID: 1, ShippingAddress: "1 Main St"}, got)

	_, err = uc.Execute(ctx, GetStatusRequest{ID: idPtr(2)})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	_, err = uc.Execute(ctx, GetStatusRequest{})
	assert.ErrorIs(t, err, apperrors.ErrMissingField)
}
