package public

import (
	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/http/response"
	"github.com/campus-rent/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewRequest 评价请求
type ReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// UpsertReview 提交或更新评价
func (h *Handler) UpsertReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	collegeID, ok := getCollegeID(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	review, err := h.ReviewService.Upsert(service.UpsertReviewInput{
		UserID:    uid,
		CollegeID: collegeID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Created(c, review)
}

// CreateOrderReview 对已完成订单中的物品评价
func (h *Handler) CreateOrderReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := handlershared.ParseIDParam(c, "order_id")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	review, err := h.ReviewService.CreateForOrder(service.OrderReviewInput{
		UserID:    uid,
		OrderID:   orderID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.Created(c, review)
}

// DeleteReview 删除自己的评价
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ReviewService.Delete(uid, id); err != nil {
		respondReviewError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListProductReviews 物品评价列表
func (h *Handler) ListProductReviews(c *gin.Context) {
	collegeID, ok := getCollegeID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := h.ProductService.GetForCollege(collegeID, id); err != nil {
		respondReviewError(c, err)
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	reviews, total, err := h.ReviewService.ListByProduct(id, page, pageSize)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	response.SuccessWithPage(c, reviews, response.BuildPagination(page, pageSize, total))
}
