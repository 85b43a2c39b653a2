//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试
// 1. 新增图书 + 价格查询（规范化后的自然键）
// 2. 重复新增返回409
// 3. 参数校验返回400

func TestBookCreateAndPrice(t *testing.T) {
	title := Unique("Gatsby")

	t.Run("新增后按规范化的书名查询", func(t *testing.T) {
		res := Do(t, http.MethodPost, "/books/new", map[string]interface{}{
			"title":  "  " + strings.ToUpper(title) + "  ",
			"author": "f   scott fitzgerald",
			"price":  9.99,
		})
		require.Equal(t, http.StatusOK, res.Status, res.Text())
		assert.Empty(t, res.Body)

		q := url.Values{"title": {strings.ToLower(title)}, "author": {"F Scott Fitzgerald"}}
		res = Do(t, http.MethodGet, "/books/price?"+q.Encode(), nil)
		require.Equal(t, http.StatusOK, res.Status, res.Text())

		var b struct {
			ID     int64   `json:"id"`
			Title  string  `json:"title"`
			Author string  `json:"author"`
			Price  float64 `json:"price"`
		}
		res.Decode(t, &b)
		assert.Positive(t, b.ID)
		assert.Equal(t, title, b.Title)
		assert.Equal(t, "F Scott Fitzgerald", b.Author)
		assert.Equal(t, 9.99, b.Price)
	})

	t.Run("重复新增", func(t *testing.T) {
		res := Do(t, http.MethodPost, "/books/new", map[string]interface{}{
			"title": title, "author": "F Scott Fitzgerald", "price": 12.5,
		})
		assert.Equal(t, http.StatusConflict, res.Status)
	})
}

func TestBookValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"缺少author", map[string]interface{}{"title": "x", "price": 1}},
		{"标点符号", map[string]interface{}{"title": "x.y", "author": "a", "price": 1}},
		{"价格为0", map[string]interface{}{"title": "x", "author": "a", "price": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Do(t, http.MethodPost, "/books/new", tt.body)
			assert.Equal(t, http.StatusBadRequest, res.Status, res.Text())
		})
	}
}
