package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建订单,回填ID;(customer_id, book_id)重复返回ErrOrderExists
	Create(ctx context.Context, o *PurchaseOrder) error

	// FindByID 根据ID查找订单
	FindByID(ctx context.Context, id int64) (*PurchaseOrder, error)

	// FindByCustomerAndBook 按自然键查找订单
	FindByCustomerAndBook(ctx context.Context, customerID, bookID int64) (*PurchaseOrder, error)

	// MarkShipped 原子地把shipped从false改为true
	// 教学要点:条件更新(WHERE shipped = false)保证并发下只成功一次
	// 订单不存在返回ErrOrderNotFound,已发货返回ErrAlreadyShipped
	MarkShipped(ctx context.Context, id int64) error
}
