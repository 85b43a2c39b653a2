package gormdb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// ErrOrderReferenceNotFound 外键约束失败:引用的客户或图书不存在
var ErrOrderReferenceNotFound = apperrors.New(apperrors.ErrCodeNotFound, "客户或图书不存在")

// orderRepository 采购单仓储实现
// 教学要点:
// 1. (customerId, bookId)唯一索引判重
// 2. 发货使用条件UPDATE,RowsAffected=0时再查一次区分"不存在"和"已发货"
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单
func (r *orderRepository) Create(ctx context.Context, o *order.PurchaseOrder) error {
	model := &PurchaseOrderModel{
		CustomerID: o.CustomerID,
		BookID:     o.BookID,
		Shipped:    o.Shipped,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		switch {
		case isDuplicateError(err):
			return order.ErrOrderExists
		case isForeignKeyError(err):
			return ErrOrderReferenceNotFound
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	return nil
}

// FindByID 根据ID查找订单
func (r *orderRepository) FindByID(ctx context.Context, id int64) (*order.PurchaseOrder, error) {
	var model PurchaseOrderModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// FindByCustomerAndBook 按自然键查找订单
func (r *orderRepository) FindByCustomerAndBook(ctx context.Context, customerID, bookID int64) (*order.PurchaseOrder, error) {
	var model PurchaseOrderModel
	err := r.db.WithContext(ctx).
		Where(map[string]interface{}{"customerId": customerID, "bookId": bookID}).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// MarkShipped 发货(原子操作)
// UPDATE PurchaseOrders SET shipped = true WHERE id = ? AND shipped = false
func (r *orderRepository) MarkShipped(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&PurchaseOrderModel{}).
		Where(map[string]interface{}{"id": id, "shipped": false}).
		Update("shipped", true)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新发货状态失败")
	}

	if result.RowsAffected == 0 {
		// 可能是订单不存在,或者已经发过货
		// 再查一次确定原因
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return order.ErrAlreadyShipped
	}

	return nil
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(m *PurchaseOrderModel) *order.PurchaseOrder {
	return &order.PurchaseOrder{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		BookID:     m.BookID,
		Shipped:    m.Shipped,
	}
}
