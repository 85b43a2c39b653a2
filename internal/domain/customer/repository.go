package customer

import (
	"context"
)

// Repository 客户仓储接口
type Repository interface {
	// Create 创建客户，回填ID；姓名重复返回ErrCustomerExists
	Create(ctx context.Context, c *Customer) error

	// FindByID 根据ID查找客户
	FindByID(ctx context.Context, id int64) (*Customer, error)

	// FindByNameAndAddress 姓名和地址同时匹配才算找到
	FindByNameAndAddress(ctx context.Context, name, addr string) (*Customer, error)

	// UpdateShippingAddress 修改收货地址；ID不存在返回ErrCustomerNotFound
	UpdateShippingAddress(ctx context.Context, id int64, addr string) error
}
