package service

import (
	"strings"
	"time"

	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"
)

// CreateProductInput 发布物品输入
type CreateProductInput struct {
	Title                 string
	Description           string
	Category              string
	BasePricePerMonth     models.Money
	OriginalPricePerMonth *models.Money
	Images                []string
}

// UpdateProductInput 修改物品输入，nil 字段保持不变
type UpdateProductInput struct {
	Title                 *string
	Description           *string
	Category              *string
	BasePricePerMonth     *models.Money
	OriginalPricePerMonth *models.Money
	Images                []string
	IsActive              *bool
}

// ProductService 物品目录服务，读取按请求者所在学校隔离
type ProductService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewProductService 创建物品目录服务
func NewProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository) *ProductService {
	return &ProductService{productRepo: productRepo, userRepo: userRepo}
}

// ListForCollege 列出本校上架物品
func (s *ProductService) ListForCollege(collegeID uint, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if collegeID == 0 {
		return nil, 0, ErrUnauthorized
	}
	filter.CollegeID = collegeID
	filter.OnlyActive = true
	filter.OwnerID = 0
	return s.productRepo.List(filter)
}

// ListMine 出借人查看自己发布的物品（含下架）
func (s *ProductService) ListMine(ownerID uint, page, pageSize int) ([]models.Product, int64, error) {
	if ownerID == 0 {
		return nil, 0, ErrUnauthorized
	}
	return s.productRepo.List(repository.ProductListFilter{OwnerID: ownerID, Page: page, PageSize: pageSize})
}

// GetForCollege 获取本校物品；其他学校的物品视为不存在
func (s *ProductService) GetForCollege(collegeID, productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByIDInCollege(productID, collegeID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 出借人发布物品
func (s *ProductService) Create(ownerID uint, input CreateProductInput) (*models.Product, error) {
	owner, err := s.userRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, ErrUnauthorized
	}
	if !owner.IsLender {
		return nil, ErrLenderRequired
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, newValidationError("title", "is required")
	}
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	if err := validatePrices(input.BasePricePerMonth, input.OriginalPricePerMonth); err != nil {
		return nil, err
	}

	product := &models.Product{
		OwnerID:               owner.ID,
		CollegeID:             owner.CollegeID,
		Title:                 title,
		Description:           strings.TrimSpace(input.Description),
		Category:              category,
		BasePricePerMonth:     input.BasePricePerMonth,
		OriginalPricePerMonth: input.OriginalPricePerMonth,
		Images:                models.StringArray(input.Images),
		IsActive:              true,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 出借人修改自己的物品，包括上下架
func (s *ProductService) Update(ownerID, productID uint, input UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OwnerID != ownerID {
		return nil, ErrProductNotFound
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, newValidationError("title", "is required")
		}
		product.Title = title
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		product.Category = category
	}
	if input.BasePricePerMonth != nil {
		product.BasePricePerMonth = *input.BasePricePerMonth
	}
	if input.OriginalPricePerMonth != nil {
		product.OriginalPricePerMonth = input.OriginalPricePerMonth
	}
	if err := validatePrices(product.BasePricePerMonth, product.OriginalPricePerMonth); err != nil {
		return nil, err
	}
	if input.Images != nil {
		product.Images = models.StringArray(input.Images)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func normalizeCategory(category string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(category))
	switch normalized {
	case "":
		return constants.CategoryOther, nil
	case constants.CategoryElectronics, constants.CategoryBooks, constants.CategoryFurniture, constants.CategoryOther:
		return normalized, nil
	default:
		return "", newValidationError("category", "is not supported")
	}
}

func validatePrices(base models.Money, original *models.Money) error {
	if !base.Decimal.IsPositive() {
		return newValidationError("base_price_per_month", "must be greater than 0")
	}
	if original != nil && original.Decimal.IsNegative() {
		return newValidationError("original_price_per_month", "must not be negative")
	}
	return nil
}
