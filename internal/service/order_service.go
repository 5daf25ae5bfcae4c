package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/logger"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderServiceOptions 订单服务可选项
type OrderServiceOptions struct {
	// StrictTransitions 为 true 时，非完成/取消的跳转也必须在白名单内
	StrictTransitions bool
}

// OrderService 租赁订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	addressRepo repository.AddressRepository
	notifier    OrderNotifier
	options     OrderServiceOptions
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	addressRepo repository.AddressRepository,
	notifier OrderNotifier,
	options OrderServiceOptions,
) *OrderService {
	if notifier == nil {
		notifier = NopOrderNotifier{}
	}
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		notifier:    notifier,
		options:     options,
		now:         time.Now,
	}
}

// allowedTransitions 严格模式下允许的状态跳转
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPendingPayment: {
		constants.OrderStatusActive:    true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusActive: {
		constants.OrderStatusCompleted: true,
		constants.OrderStatusCancelled: true,
	},
}

// CreateOrder 结算购物车生成订单
//
// 地址创建、订单与订单项写入、清空购物车、激活订单在同一事务内完成；
// 通知在提交之后发送，失败只记录日志。
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, input AddressInput) (*models.RentalOrder, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	var orderID uint
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetByUserForUpdate(userID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		address, err := buildAddress(userID, input)
		if err != nil {
			return err
		}
		if err := createAddressTx(s.addressRepo.WithTx(tx), address, true); err != nil {
			return err
		}

		items, total := snapshotCartItems(cart.Items)
		order := &models.RentalOrder{
			OrderNo:           generateOrderNo(s.now()),
			UserID:            userID,
			TotalAmount:       total,
			Status:            constants.OrderStatusPendingPayment,
			ShippingAddressID: address.ID,
		}
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}

		// 暂无支付环节，下单即生效
		if err := s.applyStatus(orderRepo, order, constants.OrderStatusActive); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetDetail(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := s.notifier.NotifyOrderPlaced(ctx, order); err != nil {
		logger.Warnw("order_notify_failed", "order_id", order.ID, "order_no", order.OrderNo, "error", err)
	}
	return order, nil
}

// SetOrderStatus 修改订单状态
//
// 租借人与出借人都可以取消未完成的订单；只有出借人能把进行中的订单标记为完成。
func (s *OrderService) SetOrderStatus(orderID, requesterID uint, status string) (*models.RentalOrder, error) {
	if requesterID == 0 {
		return nil, ErrUnauthorized
	}
	target := normalizeOrderStatus(status)
	if !isKnownOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}

	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}

		isBorrower := order.UserID == requesterID
		isOwner := order.HasOwner(requesterID)
		if !isBorrower && !isOwner {
			return ErrForbidden
		}

		switch target {
		case constants.OrderStatusCompleted:
			if !isOwner {
				return ErrForbidden
			}
			if order.Status != constants.OrderStatusActive {
				return ErrOrderTransitionInvalid
			}
		case constants.OrderStatusCancelled:
			if order.Status == constants.OrderStatusCompleted {
				return ErrOrderTransitionInvalid
			}
		}
		if s.options.StrictTransitions && !isTransitionAllowed(order.Status, target) {
			return ErrOrderTransitionInvalid
		}
		return s.applyStatus(orderRepo, order, target)
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetDetail(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderForParticipant 租借人或出借人查看订单
func (s *OrderService) GetOrderForParticipant(orderID, requesterID uint) (*models.RentalOrder, error) {
	order, err := s.orderRepo.GetDetail(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || (order.UserID != requesterID && !order.HasOwner(requesterID)) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderDetail 获取订单完整信息，供异步通知使用
func (s *OrderService) GetOrderDetail(orderID uint) (*models.RentalOrder, error) {
	order, err := s.orderRepo.GetDetail(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListBorrowerOrders 租借人的订单列表
func (s *OrderService) ListBorrowerOrders(userID uint, page, pageSize int, status string) ([]models.RentalOrder, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUnauthorized
	}
	status, err := normalizeStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   status,
	})
}

// ListLenderOrders 出借人的订单列表（订单中包含其物品）
func (s *OrderService) ListLenderOrders(ownerID uint, page, pageSize int, status string) ([]models.RentalOrder, int64, error) {
	if ownerID == 0 {
		return nil, 0, ErrUnauthorized
	}
	status, err := normalizeStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		OwnerID:  ownerID,
		Status:   status,
	})
}

// applyStatus 写入状态及对应的时间字段
func (s *OrderService) applyStatus(orderRepo repository.OrderRepository, order *models.RentalOrder, target string) error {
	now := s.now()
	updates := map[string]interface{}{
		"updated_at": now,
	}
	switch target {
	case constants.OrderStatusActive:
		if order.StartDate == nil {
			updates["start_date"] = now
			order.StartDate = &now
		}
	case constants.OrderStatusCompleted:
		updates["end_date"] = now
		order.EndDate = &now
	}
	if err := orderRepo.UpdateStatus(order.ID, target, updates); err != nil {
		return err
	}
	order.Status = target
	return nil
}

func snapshotCartItems(cartItems []models.CartItem) ([]models.RentalOrderItem, models.Money) {
	items := make([]models.RentalOrderItem, 0, len(cartItems))
	total := decimal.Zero
	for _, cartItem := range cartItems {
		item := models.RentalOrderItem{
			ProductID:             cartItem.ProductID,
			Quantity:              cartItem.Quantity,
			DurationMonths:        cartItem.DurationMonths,
			PricePerMonth:         cartItem.PricePerMonth,
			OriginalPricePerMonth: cartItem.OriginalPricePerMonth,
		}
		if cartItem.Product != nil {
			item.OwnerID = cartItem.Product.OwnerID
			item.Title = cartItem.Product.Title
		}
		total = total.Add(item.LineTotal().Decimal)
		items = append(items, item)
	}
	return items, models.NewMoneyFromDecimal(total)
}

func normalizeOrderStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

func isKnownOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPendingPayment,
		constants.OrderStatusActive,
		constants.OrderStatusCompleted,
		constants.OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func normalizeStatusFilter(status string) (string, error) {
	status = normalizeOrderStatus(status)
	if status == "" {
		return "", nil
	}
	if !isKnownOrderStatus(status) {
		return "", ErrOrderStatusInvalid
	}
	return status, nil
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

func generateOrderNo(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("RO%s%s", now.Format("20060102150405"), suffix)
}
