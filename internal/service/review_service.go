package service

import (
	"strings"
	"time"

	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"

	"gorm.io/gorm"
)

// UpsertReviewInput 提交评价输入
type UpsertReviewInput struct {
	UserID    uint
	CollegeID uint
	ProductID uint
	Rating    int
	Comment   string
}

// OrderReviewInput 订单评价输入
type OrderReviewInput struct {
	UserID    uint
	OrderID   uint
	ProductID uint
	Rating    int
	Comment   string
}

// ReviewService 评价服务，负责维护商品评分缓存
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Upsert 创建或更新用户对商品的评价
func (s *ReviewService) Upsert(input UpsertReviewInput) (*models.Review, error) {
	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	comment := strings.TrimSpace(input.Comment)

	var result *models.Review
	err := s.reviewRepo.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.WithTx(tx).GetByIDInCollege(input.ProductID, input.CollegeID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}

		reviewRepo := s.reviewRepo.WithTx(tx)
		existing, err := reviewRepo.GetByUserAndProduct(input.UserID, product.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := reviewRepo.Update(existing.ID, map[string]interface{}{
				"rating":     input.Rating,
				"comment":    comment,
				"updated_at": time.Now(),
			}); err != nil {
				return err
			}
			existing.Rating = input.Rating
			existing.Comment = comment
			result = existing
		} else {
			review := &models.Review{
				UserID:    input.UserID,
				ProductID: product.ID,
				Rating:    input.Rating,
				Comment:   comment,
			}
			if err := reviewRepo.Create(review); err != nil {
				return err
			}
			result = review
		}
		return s.recomputeRating(tx, product.ID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete 删除自己的评价
func (s *ReviewService) Delete(userID, reviewID uint) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	return s.reviewRepo.Transaction(func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		review, err := reviewRepo.GetByID(reviewID)
		if err != nil {
			return err
		}
		if review == nil || review.UserID != userID {
			return ErrReviewNotFound
		}
		if err := reviewRepo.Delete(review.ID); err != nil {
			return err
		}
		return s.recomputeRating(tx, review.ProductID)
	})
}

// CreateForOrder 针对已完成订单中的商品发表评价
func (s *ReviewService) CreateForOrder(input OrderReviewInput) (*models.Review, error) {
	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	var result *models.Review
	err := s.reviewRepo.Transaction(func(tx *gorm.DB) error {
		order, err := s.orderRepo.WithTx(tx).GetByIDAndUser(input.OrderID, input.UserID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.Status != constants.OrderStatusCompleted {
			return ErrReviewNotEligible
		}
		if !order.HasProduct(input.ProductID) {
			return ErrReviewProductNotInOrder
		}

		reviewRepo := s.reviewRepo.WithTx(tx)
		existing, err := reviewRepo.GetByUserAndProduct(input.UserID, input.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrReviewExists
		}
		orderID := order.ID
		review := &models.Review{
			UserID:    input.UserID,
			ProductID: input.ProductID,
			OrderID:   &orderID,
			Rating:    input.Rating,
			Comment:   strings.TrimSpace(input.Comment),
		}
		if err := reviewRepo.Create(review); err != nil {
			return err
		}
		result = review
		return s.recomputeRating(tx, input.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListByProduct 商品评价列表
func (s *ReviewService) ListByProduct(productID uint, page, pageSize int) ([]models.Review, int64, error) {
	return s.reviewRepo.List(repository.ReviewListFilter{
		ProductID: productID,
		Page:      page,
		PageSize:  pageSize,
	})
}

// recomputeRating 以评价表为准重算商品评分缓存
func (s *ReviewService) recomputeRating(tx *gorm.DB, productID uint) error {
	agg, err := s.reviewRepo.WithTx(tx).Aggregate(productID)
	if err != nil {
		return err
	}
	return s.productRepo.WithTx(tx).UpdateRating(productID, agg.Average, agg.Count)
}

func validateRating(rating int) error {
	if rating < constants.ReviewRatingMin || rating > constants.ReviewRatingMax {
		return newValidationError("rating", "must be between 1 and 5")
	}
	return nil
}
