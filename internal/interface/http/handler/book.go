package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase   *appbook.CreateBookUseCase
	getBookPriceUseCase *appbook.GetBookPriceUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	getBookPriceUseCase *appbook.GetBookPriceUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase:   createBookUseCase,
		getBookPriceUseCase: getBookPriceUseCase,
	}
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  title/author规范化后保存，(title, author)不能重复
// @Tags         图书
// @Accept       json
// @Produce      plain
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 "成功，无响应体"
// @Failure      400 {string} string "参数错误"
// @Failure      409 {string} string "图书已存在"
// @Failure      500 {string} string "系统内部错误"
// @Router       /books/new [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定
	var req dto.CreateBookRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	if err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:  req.Title,
		Author: req.Author,
		Price:  req.Price,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// GetBookPrice 查询图书价格
// @Summary      查询图书价格
// @Description  按书名和作者查询（大小写、空白不敏感）。可用JSON请求体或查询参数
// @Tags         图书
// @Produce      json
// @Param        title  query string false "书名"
// @Param        author query string false "作者"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {string} string "参数错误"
// @Failure      404 {string} string "图书不存在"
// @Router       /books/price [get]
func (h *BookHandler) GetBookPrice(c *gin.Context) {
	var req dto.BookPriceRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getBookPriceUseCase.Execute(c.Request.Context(), appbook.GetBookPriceRequest{
		Title:  req.Title,
		Author: req.Author,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BookResponse{
		ID:     result.ID,
		Title:  result.Title,
		Author: result.Author,
		Price:  result.Price,
	})
}
