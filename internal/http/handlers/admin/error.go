package admin

import (
	"errors"
	"net/http"

	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func respondLenderReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLenderApplicationNotFound):
		respondError(c, http.StatusNotFound, "lender application not found", nil)
	case errors.Is(err, service.ErrLenderApplicationReviewed):
		respondError(c, http.StatusConflict, "lender application already reviewed", nil)
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "lender application review failed", err)
	}
}
