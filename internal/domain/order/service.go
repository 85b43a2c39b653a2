package order

import (
	"context"
)

// Service 订单领域服务
// 教学要点:客户和图书是否存在属于跨聚合检查,放在application层编排
type Service interface {
	// PlaceOrder 创建订单
	PlaceOrder(ctx context.Context, customerID, bookID int64) (*PurchaseOrder, error)

	// GetByID 根据ID获取订单
	GetByID(ctx context.Context, id int64) (*PurchaseOrder, error)

	// GetByCustomerAndBook 按客户和图书获取订单
	GetByCustomerAndBook(ctx context.Context, customerID, bookID int64) (*PurchaseOrder, error)

	// Ship 发货,每个订单只能发一次
	Ship(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService 创建订单服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) PlaceOrder(ctx context.Context, customerID, bookID int64) (*PurchaseOrder, error) {
	o := NewPurchaseOrder(customerID, bookID)
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*PurchaseOrder, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByCustomerAndBook(ctx context.Context, customerID, bookID int64) (*PurchaseOrder, error) {
	return s.repo.FindByCustomerAndBook(ctx, customerID, bookID)
}

func (s *service) Ship(ctx context.Context, id int64) error {
	return s.repo.MarkShipped(ctx, id)
}
