package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderStatusTemplate 订单状态页面的模板名，由router加载
const OrderStatusTemplate = "order_status.html"

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase *apporder.CreateOrderUseCase
	getShippedUseCase  *apporder.GetShippedUseCase
	shipOrderUseCase   *apporder.ShipOrderUseCase
	getStatusUseCase   *apporder.GetStatusUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	getShippedUseCase *apporder.GetShippedUseCase,
	shipOrderUseCase *apporder.ShipOrderUseCase,
	getStatusUseCase *apporder.GetStatusUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase: createOrderUseCase,
		getShippedUseCase:  getShippedUseCase,
		shipOrderUseCase:   shipOrderUseCase,
		getStatusUseCase:   getStatusUseCase,
	}
}

// CreateOrder 下单
// @Summary      下单
// @Description  客户和图书必须存在，同一客户对同一本书只能有一个订单
// @Tags         订单
// @Accept       json
// @Produce      plain
// @Param        request body dto.CreateOrderRequest true "客户ID和图书ID"
// @Success      200 "成功，无响应体"
// @Failure      400 {string} string "参数错误"
// @Failure      404 {string} string "客户或图书不存在"
// @Failure      409 {string} string "订单已存在"
// @Router       /orders/new [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		CustomerID: req.CustomerID,
		BookID:     req.BookID,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// GetShipped 查询是否已发货
// @Summary      查询是否已发货
// @Tags         订单
// @Produce      json
// @Param        customer_id query int false "客户ID"
// @Param        book_id     query int false "图书ID"
// @Success      200 {object} dto.ShippedResponse
// @Failure      400 {string} string "参数错误"
// @Failure      404 {string} string "订单不存在"
// @Router       /orders/shipped [get]
func (h *OrderHandler) GetShipped(c *gin.Context) {
	var req dto.ShippedRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getShippedUseCase.Execute(c.Request.Context(), apporder.GetShippedRequest{
		CustomerID: req.CustomerID,
		BookID:     req.BookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ShippedResponse{Shipped: result.Shipped})
}

// ShipOrder 发货
// @Summary      发货
// @Description  只能发货一次，重复发货返回409
// @Tags         订单
// @Accept       json
// @Produce      plain
// @Param        request body dto.OrderIDRequest true "订单ID"
// @Success      200 "成功，无响应体"
// @Failure      400 {string} string "参数错误"
// @Failure      404 {string} string "订单不存在"
// @Failure      409 {string} string "订单已发货"
// @Router       /orders/ship [put]
func (h *OrderHandler) ShipOrder(c *gin.Context) {
	var req dto.OrderIDRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.shipOrderUseCase.Execute(c.Request.Context(), apporder.ShipOrderRequest{ID: req.ID}); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// GetStatus 订单状态页面
// @Summary      订单状态
// @Description  返回HTML：订单ID、图书ID、客户ID、客户当前收货地址
// @Tags         订单
// @Produce      html
// @Param        id query int false "订单ID"
// @Success      200 {string} string "HTML页面"
// @Failure      400 {string} string "参数错误"
// @Failure      404 {string} string "订单不存在"
// @Router       /orders/status [get]
func (h *OrderHandler) GetStatus(c *gin.Context) {
	var req dto.OrderIDRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getStatusUseCase.Execute(c.Request.Context(), apporder.GetStatusRequest{ID: req.ID})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.HTML(http.StatusOK, OrderStatusTemplate, &dto.OrderStatusView{
		OrderID:         result.OrderID,
		BookID:          result.BookID,
		CustomerID:      result.CustomerID,
		ShippingAddress: result.ShippingAddress,
	})
}
