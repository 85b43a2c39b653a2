package dto

// 请求DTO说明:
// 1. 所有字段都是指针，nil表示请求里没有这个字段（缺字段返回400，而不是当成零值）
// 2. json tag用于请求体，form tag用于GET请求的查询参数
// 3. 不用binding tag做校验，字段规则统一在domain/field里

// CreateBookRequest 新增图书
type CreateBookRequest struct {
	Title  *string  `json:"title" form:"title" example:"The Great Gatsby"`
	Author *string  `json:"author" form:"author" example:"F Scott Fitzgerald"`
	Price  *float64 `json:"price" form:"price" example:"9.99"`
}

// BookPriceRequest 按书名和作者查询价格
type BookPriceRequest struct {
	Title  *string `json:"title" form:"title" example:"The Great Gatsby"`
	Author *string `json:"author" form:"author" example:"F Scott Fitzgerald"`
}

// BookResponse 图书
type BookResponse struct {
	ID     int64   `json:"id" example:"1"`
	Title  string  `json:"title" example:"The Great Gatsby"`
	Author string  `json:"author" example:"F Scott Fitzgerald"`
	Price  float64 `json:"price" example:"9.99"`
}
