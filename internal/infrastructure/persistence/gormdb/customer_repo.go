package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// customerRepository 客户仓储实现
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

// Create 创建客户
// 姓名唯一索引冲突 → customer.ErrCustomerExists
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := &CustomerModel{
		Name:            c.Name,
		ShippingAddress: c.ShippingAddress,
		AccountBalance:  c.AccountBalance,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return customer.ErrCustomerExists
		}
		return apperrors.Wrap(err, "创建客户失败")
	}

	c.ID = model.ID
	return nil
}

// FindByID 根据ID查找客户
func (r *customerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var model CustomerModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

// FindByNameAndAddress 姓名和地址都匹配才返回
func (r *customerRepository) FindByNameAndAddress(ctx context.Context, name, addr string) (*customer.Customer, error) {
	var model CustomerModel
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"name": name, "shippingAddress": addr}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

// UpdateShippingAddress 修改收货地址
// MySQL在新旧值相同时RowsAffected为0,所以0行时要再查一次确认客户是否存在
func (r *customerRepository) UpdateShippingAddress(ctx context.Context, id int64, addr string) error {
	result := r.db.WithContext(ctx).
		Model(&CustomerModel{}).
		Where("id = ?", id).
		Update("shippingAddress", addr)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新收货地址失败")
	}

	if result.RowsAffected == 0 {
		_, err := r.FindByID(ctx, id)
		return err
	}
	return nil
}

// toCustomerEntity GORM模型 → 领域实体
func toCustomerEntity(m *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:              m.ID,
		Name:            m.Name,
		ShippingAddress: m.ShippingAddress,
		AccountBalance:  m.AccountBalance,
	}
}
