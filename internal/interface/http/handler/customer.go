package handler

import (
	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CustomerHandler 客户HTTP处理器
type CustomerHandler struct {
	createCustomerUseCase *appcustomer.CreateCustomerUseCase
	updateAddressUseCase  *appcustomer.UpdateAddressUseCase
	getBalanceUseCase     *appcustomer.GetBalanceUseCase
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(
	createCustomerUseCase *appcustomer.CreateCustomerUseCase,
	updateAddressUseCase *appcustomer.UpdateAddressUseCase,
	getBalanceUseCase *appcustomer.GetBalanceUseCase,
) *CustomerHandler {
	return &CustomerHandler{
		createCustomerUseCase: createCustomerUseCase,
		updateAddressUseCase:  updateAddressUseCase,
		getBalanceUseCase:     getBalanceUseCase,
	}
}

// CreateCustomer 新增客户
// @Summary      新增客户
// @Tags         客户
// @Accept       json
// @Produce      plain
// @Param        request body dto.CreateCustomerRequest true "客户信息"
// @Success      200 "成功，无响应体"
// @Failure      400 {string} string "参数错误"
// @Failure      409 {string} string "客户已存在"
// @Router       /customers/new [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.createCustomerUseCase.Execute(c.Request.Context(), appcustomer.CreateCustomerRequest{
		Name:            req.Name,
		ShippingAddress: req.ShippingAddress,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// UpdateAddress 修改收货地址
// @Summary      修改收货地址
// @Tags         客户
// @Accept       json
// @Produce      plain
// @Param        request body dto.UpdateAddressRequest true "客户ID和新地址"
// @Success      200 "成功，无响应体"
// @Failure      400 {string} string "参数错误"
// @Failure      404 {string} string "客户不存在"
// @Router       /customers/updateAddress [post]
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	var req dto.UpdateAddressRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.updateAddressUseCase.Execute(c.Request.Context(), appcustomer.UpdateAddressRequest{
		ID:              req.ID,
		ShippingAddress: req.ShippingAddress,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c)
}

// GetBalance 查询账户余额
// @Summary      查询账户余额
// @Tags         客户
// @Produce      json
// @Param        name             query string false "姓名"
// @Param        shipping_address query string false "收货地址"
// @Success      200 {object} dto.BalanceResponse
// @Failure      400 {string} string "参数错误"
// @Failure      404 {string} string "客户不存在"
// @Router       /customers/balance [get]
func (h *CustomerHandler) GetBalance(c *gin.Context) {
	var req dto.BalanceRequest
	if err := bind(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.getBalanceUseCase.Execute(c.Request.Context(), appcustomer.GetBalanceRequest{
		Name:            req.Name,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.BalanceResponse{AccountBalance: result.AccountBalance})
}
