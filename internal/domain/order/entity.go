package order

// PurchaseOrder 采购单实体（聚合根）
// 教学要点:
// 1. 只保存CustomerID/BookID,不直接引用Customer/Book对象(避免跨聚合引用)
// 2. (CustomerID, BookID)是自然键,数据库联合唯一索引保证
// 3. Shipped只能 false → true 一次,不支持撤销发货
type PurchaseOrder struct {
	ID         int64
	CustomerID int64
	BookID     int64
	Shipped    bool
}

// NewPurchaseOrder 创建新采购单(工厂方法),初始未发货
func NewPurchaseOrder(customerID, bookID int64) *PurchaseOrder {
	return &PurchaseOrder{
		CustomerID: customerID,
		BookID:     bookID,
	}
}

// Ship 标记发货(领域行为)
// 已发货的订单再次发货返回ErrAlreadyShipped
func (o *PurchaseOrder) Ship() error {
	if o.Shipped {
		return ErrAlreadyShipped
	}
	o.Shipped = true
	return nil
}
