package service

import (
	"errors"
	"fmt"
)

// 通用
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// 认证与用户
var (
	ErrInvalidEmail        = errors.New("invalid email")
	ErrEmailExists         = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserDisabled        = errors.New("user disabled")
	ErrUserNotFound        = errors.New("user not found")
	ErrWeakPassword        = errors.New("password does not meet policy")
	ErrCollegeNotSupported = errors.New("email domain does not belong to a supported college")
	ErrInvalidToken        = errors.New("invalid token")
)

// 商品与购物车
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrCartItemNotFound    = errors.New("cart item not found")
)

// 地址
var (
	ErrAddressNotFound = errors.New("address not found")
)

// 订单
var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderStatusInvalid     = errors.New("invalid order status")
	ErrOrderTransitionInvalid = errors.New("order status transition not allowed")
)

// 评价
var (
	ErrReviewNotFound          = errors.New("review not found")
	ErrReviewExists            = errors.New("review already exists")
	ErrReviewNotEligible       = errors.New("order is not completed")
	ErrReviewProductNotInOrder = errors.New("product is not part of the order")
)

// 出借人
var (
	ErrLenderRequired            = errors.New("lender approval required")
	ErrAlreadyLender             = errors.New("user is already a lender")
	ErrLenderApplicationPending  = errors.New("lender application already pending")
	ErrLenderApplicationNotFound = errors.New("lender application not found")
	ErrLenderApplicationReviewed = errors.New("lender application already reviewed")
)

// 邮件
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// newValidationError 返回携带字段名的校验错误，errors.Is(err, ErrValidation) 为真
func newValidationError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, reason)
}
