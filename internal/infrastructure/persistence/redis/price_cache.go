package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// PriceCache 图书价格缓存（Cache-Aside）
// 教学要点：
// 1. 按自然键(title, author)缓存，价格查询先查缓存，未命中再查数据库并回填
// 2. 图书创建后不再修改，缓存不存在失效问题，TTL只用于控制内存占用
// 3. 依赖redis.Cmdable而不是*redis.Client，集群客户端同样可用
type PriceCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewPriceCache 创建价格缓存
func NewPriceCache(client redis.Cmdable, ttl time.Duration) *PriceCache {
	return &PriceCache{client: client, ttl: ttl}
}

// cachedBook 缓存中的JSON结构
type cachedBook struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
}

// Get 读取缓存；未命中返回(nil, false, nil)
func (c *PriceCache) Get(ctx context.Context, title, author string) (*book.Book, bool, error) {
	val, err := c.client.Get(ctx, priceKey(title, author)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("获取缓存失败: %w", err)
	}

	var cb cachedBook
	if err := json.Unmarshal([]byte(val), &cb); err != nil {
		return nil, false, fmt.Errorf("反序列化失败: %w", err)
	}
	return &book.Book{ID: cb.ID, Title: cb.Title, Author: cb.Author, Price: cb.Price}, true, nil
}

// Set 写入缓存
func (c *PriceCache) Set(ctx context.Context, b *book.Book) error {
	val, err := json.Marshal(cachedBook{ID: b.ID, Title: b.Title, Author: b.Author, Price: b.Price})
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, priceKey(b.Title, b.Author), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// priceKey 缓存Key：bookshop:book:{title}|{author}
// 规范化后的书名和作者只含字母、数字和空格，用"|"分隔不会冲突
func priceKey(title, author string) string {
	return fmt.Sprintf("bookshop:book:%s|%s", title, author)
}
