package public

import (
	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/http/response"
	"github.com/campus-rent/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	Address service.AddressInput `json:"address"`
}

// UpdateOrderStatusRequest 修改订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Checkout 结算购物车
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	order, err := h.OrderService.CreateOrder(c.Request.Context(), uid, req.Address)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"user_id", uid,
		"total_amount", order.TotalAmount.String(),
	)
	response.Created(c, order)
}

// ListOrders 我租借的订单
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListBorrowerOrders(uid, page, pageSize, c.Query("status"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// ListLendingOrders 我出借的订单
func (h *Handler) ListLendingOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListLenderOrders(uid, page, pageSize, c.Query("status"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrder 订单详情（租借人或出借人）
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderForParticipant(id, uid)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 修改订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	order, err := h.OrderService.SetOrderStatus(id, uid, req.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("order_status_changed",
		"order_id", order.ID,
		"status", order.Status,
		"requester_id", uid,
	)
	response.Success(c, order)
}
