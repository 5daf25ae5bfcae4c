package public

import (
	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/http/response"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"
	"github.com/campus-rent/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 发布物品请求
type CreateProductRequest struct {
	Title                 string        `json:"title" binding:"required"`
	Description           string        `json:"description"`
	Category              string        `json:"category"`
	BasePricePerMonth     models.Money  `json:"base_price_per_month"`
	OriginalPricePerMonth *models.Money `json:"original_price_per_month"`
	Images                []string      `json:"images"`
}

// UpdateProductRequest 修改物品请求
type UpdateProductRequest struct {
	Title                 *string       `json:"title"`
	Description           *string       `json:"description"`
	Category              *string       `json:"category"`
	BasePricePerMonth     *models.Money `json:"base_price_per_month"`
	OriginalPricePerMonth *models.Money `json:"original_price_per_month"`
	Images                []string      `json:"images"`
	IsActive              *bool         `json:"is_active"`
}

// ListProducts 本校物品列表
func (h *Handler) ListProducts(c *gin.Context) {
	collegeID, ok := getCollegeID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	products, total, err := h.ProductService.ListForCollege(collegeID, repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// ListMyProducts 我发布的物品
func (h *Handler) ListMyProducts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	products, total, err := h.ProductService.ListMine(uid, page, pageSize)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 物品详情
func (h *Handler) GetProduct(c *gin.Context) {
	collegeID, ok := getCollegeID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.GetForCollege(collegeID, id)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 发布物品
func (h *Handler) CreateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	product, err := h.ProductService.Create(uid, service.CreateProductInput{
		Title:                 req.Title,
		Description:           req.Description,
		Category:              req.Category,
		BasePricePerMonth:     req.BasePricePerMonth,
		OriginalPricePerMonth: req.OriginalPricePerMonth,
		Images:                req.Images,
	})
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Created(c, product)
}

// UpdateProduct 修改物品或上下架
func (h *Handler) UpdateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := handlershared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	product, err := h.ProductService.Update(uid, id, service.UpdateProductInput{
		Title:                 req.Title,
		Description:           req.Description,
		Category:              req.Category,
		BasePricePerMonth:     req.BasePricePerMonth,
		OriginalPricePerMonth: req.OriginalPricePerMonth,
		Images:                req.Images,
		IsActive:              req.IsActive,
	})
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, product)
}
