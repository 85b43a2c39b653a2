package book

import (
	"context"
)

// Service 图书领域服务接口
type Service interface {
	// AddBook 新增图书
	// 业务规则:
	// - 价格 >= 0.01
	// - (title, author)不能重复,由唯一索引保证,不做先查后插
	AddBook(ctx context.Context, title, author string, price float64) (*Book, error)

	// GetBookByID 根据ID获取图书
	GetBookByID(ctx context.Context, id int64) (*Book, error)

	// GetBook 按书名和作者获取图书
	GetBook(ctx context.Context, title, author string) (*Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新增图书
func (s *service) AddBook(ctx context.Context, title, author string, price float64) (*Book, error) {
	book, err := NewBook(title, author, price)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id int64) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBook 按书名和作者获取图书
func (s *service) GetBook(ctx context.Context, title, author string) (*Book, error) {
	return s.repo.FindByTitleAndAuthor(ctx, title, author)
}
