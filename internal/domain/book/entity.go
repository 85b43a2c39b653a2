package book

// Book 图书实体(聚合根)
// 设计说明:
// 1. (Title, Author)是自然键,数据库层用联合唯一索引保证
// 2. Title/Author已经过field.Normalize规范化,实体不再重复处理
// 3. ID由存储分配,创建后不可变
type Book struct {
	ID     int64
	Title  string  // 书名(规范化后)
	Author string  // 作者(规范化后)
	Price  float64 // 价格,>= 0.01
}

// NewBook 创建新图书(工厂方法)
// 调用方负责字段校验,这里只做最后一道价格检查
func NewBook(title, author string, price float64) (*Book, error) {
	if price < MinPrice {
		return nil, ErrInvalidPrice
	}
	return &Book{
		Title:  title,
		Author: author,
		Price:  price,
	}, nil
}

// MinPrice 最低售价
const MinPrice = 0.01
