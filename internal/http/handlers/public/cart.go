package public

import (
	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/http/response"
	"github.com/campus-rent/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	ProductID      uint `json:"product_id" binding:"required"`
	Quantity       int  `json:"quantity"`
	DurationMonths int  `json:"duration_months"`
}

// UpdateCartItemRequest 修改购物车项请求
type UpdateCartItemRequest struct {
	ItemID         uint `json:"item_id" binding:"required"`
	Quantity       *int `json:"quantity"`
	DurationMonths *int `json:"duration_months"`
}

// RemoveCartItemRequest 删除购物车项请求
type RemoveCartItemRequest struct {
	ItemID uint `json:"item_id" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	view, err := h.CartService.GetCart(uid)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	collegeID, ok := getCollegeID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	item, err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:         uid,
		CollegeID:      collegeID,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateCartItem 修改购物车项
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	item, err := h.CartService.UpdateItem(service.UpdateCartItemInput{
		UserID:         uid,
		ItemID:         req.ItemID,
		Quantity:       req.Quantity,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// RemoveCartItem 删除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if err := h.CartService.RemoveItem(uid, req.ItemID); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
