package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书,回填ID
	// (title, author)重复时返回ErrBookExists
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id int64) (*Book, error)

	// FindByTitleAndAuthor 按自然键查找图书
	FindByTitleAndAuthor(ctx context.Context, title, author string) (*Book, error)
}
