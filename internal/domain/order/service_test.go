package order

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository 内存版仓储,用互斥锁模拟条件更新
type memoryRepository struct {
	mu     sync.Mutex
	rows   map[int64]*PurchaseOrder
	nextID int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[int64]*PurchaseOrder)}
}

func (r *memoryRepository) Create(_ context.Context, o *PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.CustomerID == o.CustomerID && row.BookID == o.BookID {
			return ErrOrderExists
		}
	}
	r.nextID++
	o.ID = r.nextID
	copied := *o
	r.rows[o.ID] = &copied
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *memoryRepository) FindByCustomerAndBook(_ context.Context, customerID, bookID int64) (*PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.CustomerID == customerID && row.BookID == bookID {
			copied := *row
			return &copied, nil
		}
	}
	return nil, ErrOrderNotFound
}

func (r *memoryRepository) MarkShipped(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return ErrOrderNotFound
	}
	return row.Ship()
}

func TestPlaceOrderAndShip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepository())

	o, err := svc.PlaceOrder(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, o.Shipped)

	_, err = svc.PlaceOrder(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrOrderExists)

	require.NoError(t, svc.Ship(ctx, o.ID))
	assert.ErrorIs(t, svc.Ship(ctx, o.ID), ErrAlreadyShipped)

	got, err := svc.GetByCustomerAndBook(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, got.Shipped)

	assert.ErrorIs(t, svc.Ship(ctx, 99), ErrOrderNotFound)
}

func TestShip_ConcurrentCallsSucceedOnce(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepository())
	o, err := svc.PlaceOrder(ctx, 1, 1)
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Ship(ctx, o.ID) == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}
