package public

import (
	"errors"
	"net/http"

	"github.com/campus-rent/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// message 为空时直接返回错误文本（校验错误携带字段名）。
type mappedHandlerError struct {
	target  error
	code    int
	message string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			msg := rule.message
			if msg == "" {
				msg = err.Error()
			}
			respondError(c, rule.code, msg, nil)
			return
		}
	}
	respondError(c, http.StatusInternalServerError, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var commonErrorRules = []mappedHandlerError{
	{target: service.ErrValidation, code: http.StatusBadRequest},
	{target: service.ErrUnauthorized, code: http.StatusUnauthorized, message: "unauthorized"},
	{target: service.ErrForbidden, code: http.StatusForbidden, message: "forbidden"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: http.StatusBadRequest, message: "invalid email"},
	{target: service.ErrEmailExists, code: http.StatusBadRequest, message: "email already registered"},
	{target: service.ErrWeakPassword, code: http.StatusBadRequest},
	{target: service.ErrCollegeNotSupported, code: http.StatusBadRequest, message: "email domain does not belong to a supported college"},
	{target: service.ErrInvalidCredentials, code: http.StatusUnauthorized, message: "invalid email or password"},
	{target: service.ErrUserDisabled, code: http.StatusUnauthorized, message: "account disabled"},
	{target: service.ErrUserNotFound, code: http.StatusNotFound, message: "user not found"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotAvailable, code: http.StatusBadRequest, message: "product not available"},
	{target: service.ErrCartItemNotFound, code: http.StatusNotFound, message: "cart item not found"},
}

var addressErrorRules = []mappedHandlerError{
	{target: service.ErrAddressNotFound, code: http.StatusNotFound, message: "address not found"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, code: http.StatusBadRequest, message: "cart is empty"},
	{target: service.ErrOrderNotFound, code: http.StatusNotFound, message: "order not found"},
	{target: service.ErrOrderStatusInvalid, code: http.StatusBadRequest, message: "invalid order status"},
	{target: service.ErrOrderTransitionInvalid, code: http.StatusBadRequest, message: "order status transition not allowed"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: http.StatusNotFound, message: "product not found"},
	{target: service.ErrOrderNotFound, code: http.StatusNotFound, message: "order not found"},
	{target: service.ErrReviewNotFound, code: http.StatusNotFound, message: "review not found"},
	{target: service.ErrReviewExists, code: http.StatusBadRequest, message: "review already exists"},
	{target: service.ErrReviewNotEligible, code: http.StatusBadRequest, message: "order is not completed"},
	{target: service.ErrReviewProductNotInOrder, code: http.StatusBadRequest, message: "product is not part of the order"},
}

var productErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: http.StatusNotFound, message: "product not found"},
	{target: service.ErrLenderRequired, code: http.StatusForbidden, message: "lender approval required"},
}

var lenderErrorRules = []mappedHandlerError{
	{target: service.ErrAlreadyLender, code: http.StatusBadRequest, message: "user is already a lender"},
	{target: service.ErrLenderApplicationPending, code: http.StatusBadRequest, message: "lender application already pending"},
	{target: service.ErrLenderApplicationNotFound, code: http.StatusNotFound, message: "lender application not found"},
}

func respondAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commonErrorRules, authErrorRules), "authentication failed")
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commonErrorRules, cartErrorRules), "cart operation failed")
}

func respondAddressError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commonErrorRules, addressErrorRules), "address operation failed")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commonErrorRules, orderErrorRules), "order operation failed")
}

func respondReviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commonErrorRules, reviewErrorRules), "review operation failed")
}

func respondProductError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commonErrorRules, productErrorRules), "product operation failed")
}

func respondLenderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(commonErrorRules, lenderErrorRules), "lender application failed")
}
