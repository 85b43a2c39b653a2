//go:build integration

// Package integration 针对运行中服务的端到端测试
//
// 运行方式：
//
//	bookshop serve &
//	go test -tags integration ./test/integration/...
//
// BOOKSHOP_BASE_URL 指定服务地址（默认 http://localhost:8000），
// BOOKSHOP_CONFIG 指定与服务相同的配置文件，用于直接查询客户ID和订单ID（HTTP接口不返回）。
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/gormdb"
)

// Timeout HTTP请求超时时间
const Timeout = 10 * time.Second

// BaseURL 服务地址
func BaseURL() string {
	if u := os.Getenv("BOOKSHOP_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8000"
}

// Result 响应：状态码和原始响应体
type Result struct {
	Status int
	Body   []byte
}

// Text 纯文本响应体（错误信息）
func (r *Result) Text() string {
	return string(r.Body)
}

// Decode 解析JSON响应体
func (r *Result) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "解析JSON响应失败: %s", r.Text())
}

// Do 发送请求，data不为nil时作为JSON请求体
func Do(t *testing.T, method, path string, data interface{}) *Result {
	t.Helper()

	var body io.Reader
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, BaseURL()+path, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败（服务是否已启动？）")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")
	return &Result{Status: resp.StatusCode, Body: raw}
}

var seq atomic.Int64

// Unique 生成唯一的名称（只含字母、数字、空格，规范化后不变）
func Unique(prefix string) string {
	return fmt.Sprintf("%s %d%d", prefix, time.Now().UnixNano(), seq.Add(1))
}

// CreateBook 新增图书并返回ID（通过价格查询拿到ID）
func CreateBook(t *testing.T, title string, price float64) int64 {
	t.Helper()
	const author = "Integration Author"

	res := Do(t, http.MethodPost, "/books/new", map[string]interface{}{
		"title": title, "author": author, "price": price,
	})
	require.Equal(t, http.StatusOK, res.Status, res.Text())

	res = Do(t, http.MethodGet, "/books/price", map[string]interface{}{"title": title, "author": author})
	require.Equal(t, http.StatusOK, res.Status, res.Text())
	var b struct {
		ID int64 `json:"id"`
	}
	res.Decode(t, &b)
	return b.ID
}

// CreateCustomer 新增客户并返回ID
func CreateCustomer(t *testing.T, name, addr string) int64 {
	t.Helper()

	res := Do(t, http.MethodPost, "/customers/new", map[string]interface{}{
		"name": name, "shipping_address": addr,
	})
	require.Equal(t, http.StatusOK, res.Status, res.Text())

	return customerID(t, name, addr)
}

// OrderID 直接查库拿订单ID（HTTP接口不返回订单ID）
func OrderID(t *testing.T, customerID, bookID int64) int64 {
	t.Helper()
	db := openDB(t)

	o, err := gormdb.NewOrderRepository(db).FindByCustomerAndBook(context.Background(), customerID, bookID)
	require.NoError(t, err, "查询订单ID失败")
	return o.ID
}

// customerID 直接查库拿客户ID
func customerID(t *testing.T, name, addr string) int64 {
	t.Helper()
	db := openDB(t)

	c, err := gormdb.NewCustomerRepository(db).FindByNameAndAddress(context.Background(), name, addr)
	require.NoError(t, err, "查询客户ID失败")
	return c.ID
}

// openDB 用服务的配置打开同一个数据库
func openDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg, err := config.Load(os.Getenv("BOOKSHOP_CONFIG"))
	require.NoError(t, err)
	db, err := gormdb.NewDB(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
