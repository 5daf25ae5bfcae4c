package service

import (
	"time"

	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"

	"gorm.io/gorm"
)

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	UserID         uint
	CollegeID      uint
	ProductID      uint
	Quantity       int
	DurationMonths int
}

// UpdateCartItemInput 修改购物车项输入，nil 字段保持不变
type UpdateCartItemInput struct {
	UserID         uint
	ItemID         uint
	Quantity       *int
	DurationMonths *int
}

// CartView 购物车视图
type CartView struct {
	ID    uint              `json:"id"`
	Items []models.CartItem `json:"items"`
	Total models.Money      `json:"total"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart 获取用户购物车；尚未创建时返回空购物车
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	view := &CartView{Items: []models.CartItem{}}
	if cart == nil {
		return view, nil
	}
	view.ID = cart.ID
	if len(cart.Items) > 0 {
		view.Items = cart.Items
	}
	view.Total = sumCartItems(cart.Items)
	return view, nil
}

// AddItem 加入购物车
//
// 同一商品重复加入时数量累加、租期以本次为准，价格快照保持首次加入时的值。
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}
	if input.Quantity <= 0 {
		return nil, newValidationError("quantity", "must be a positive integer")
	}
	if input.DurationMonths <= 0 {
		return nil, newValidationError("duration_months", "must be a positive integer")
	}

	var result models.CartItem
	err := s.cartRepo.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.WithTx(tx).GetByIDInCollege(input.ProductID, input.CollegeID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return ErrProductNotAvailable
		}

		cartRepo := s.cartRepo.WithTx(tx)
		cart, err := cartRepo.GetOrCreateForUpdate(input.UserID)
		if err != nil {
			return err
		}
		existing, err := cartRepo.GetItem(cart.ID, product.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			quantity := existing.Quantity + input.Quantity
			if err := cartRepo.UpdateItem(existing.ID, map[string]interface{}{
				"quantity":        quantity,
				"duration_months": input.DurationMonths,
				"updated_at":      time.Now(),
			}); err != nil {
				return err
			}
			existing.Quantity = quantity
			existing.DurationMonths = input.DurationMonths
			result = *existing
			return nil
		}

		item := models.CartItem{
			CartID:                cart.ID,
			ProductID:             product.ID,
			Quantity:              input.Quantity,
			DurationMonths:        input.DurationMonths,
			PricePerMonth:         product.BasePricePerMonth,
			OriginalPricePerMonth: product.OriginalPricePerMonth,
		}
		if err := cartRepo.CreateItem(&item); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateItem 修改购物车项数量或租期
func (s *CartService) UpdateItem(input UpdateCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 {
		return nil, ErrUnauthorized
	}
	updates := map[string]interface{}{}
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, newValidationError("quantity", "must be a positive integer")
		}
		updates["quantity"] = *input.Quantity
	}
	if input.DurationMonths != nil {
		if *input.DurationMonths <= 0 {
			return nil, newValidationError("duration_months", "must be a positive integer")
		}
		updates["duration_months"] = *input.DurationMonths
	}

	item, err := s.cartRepo.GetItemForUser(input.ItemID, input.UserID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if len(updates) == 0 {
		return item, nil
	}
	updates["updated_at"] = time.Now()
	if err := s.cartRepo.UpdateItem(item.ID, updates); err != nil {
		return nil, err
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.DurationMonths != nil {
		item.DurationMonths = *input.DurationMonths
	}
	return item, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	item, err := s.cartRepo.GetItemForUser(itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.DeleteItem(item.ID)
}

func sumCartItems(items []models.CartItem) models.Money {
	total := models.Money{}
	for _, item := range items {
		line := models.LineTotal(item.Quantity, item.DurationMonths, item.PricePerMonth)
		total = models.NewMoneyFromDecimal(total.Decimal.Add(line.Decimal))
	}
	return total
}
