package customer

import (
	"context"
)

// Service 客户领域服务
// 设计说明：
// 1. 输入已由field包规范化，Service只负责业务规则和持久化编排
// 2. 唯一性由数据库唯一索引保证，不做先查后插
type Service interface {
	// Register 新客户注册，余额为0
	Register(ctx context.Context, name, shippingAddress string) (*Customer, error)

	// GetByID 根据ID获取客户
	GetByID(ctx context.Context, id int64) (*Customer, error)

	// GetBalance 按姓名+地址查询账户余额
	GetBalance(ctx context.Context, name, shippingAddress string) (float64, error)

	// UpdateShippingAddress 修改收货地址
	UpdateShippingAddress(ctx context.Context, id int64, shippingAddress string) error
}

type service struct {
	repo Repository
}

// NewService 创建客户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 新客户注册
func (s *service) Register(ctx context.Context, name, shippingAddress string) (*Customer, error) {
	c := NewCustomer(name, shippingAddress)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID 根据ID获取客户
func (s *service) GetByID(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBalance 查询余额
func (s *service) GetBalance(ctx context.Context, name, shippingAddress string) (float64, error) {
	c, err := s.repo.FindByNameAndAddress(ctx, name, shippingAddress)
	if err != nil {
		return 0, err
	}
	return c.AccountBalance, nil
}

// UpdateShippingAddress 修改收货地址
func (s *service) UpdateShippingAddress(ctx context.Context, id int64, shippingAddress string) error {
	return s.repo.UpdateShippingAddress(ctx, id, shippingAddress)
}
