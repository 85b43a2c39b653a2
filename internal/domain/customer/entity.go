package customer

// Customer 客户实体（聚合根）
// 设计说明：
// 1. Name是存在性判断用的自然键（唯一索引）
// 2. AccountBalance创建时为0，本服务只读
// 3. 领域实体不依赖GORM tag，映射在infrastructure层完成
type Customer struct {
	ID              int64
	Name            string
	ShippingAddress string
	AccountBalance  float64
}

// NewCustomer 创建新客户（工厂方法）
func NewCustomer(name, shippingAddress string) *Customer {
	return &Customer{
		Name:            name,
		ShippingAddress: shippingAddress,
	}
}

// ChangeShippingAddress 修改收货地址（领域行为）
func (c *Customer) ChangeShippingAddress(addr string) {
	c.ShippingAddress = addr
}
