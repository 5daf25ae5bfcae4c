package shared

import (
	"net/http"

	"github.com/campus-rent/internal/http/response"
	"github.com/campus-rent/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if id := response.RequestIDFromContext(c); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 返回错误响应；5xx 且带原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	if err != nil && code >= http.StatusInternalServerError {
		RequestLog(c).Errorw("handler_error",
			"code", code,
			"message", msg,
			"path", c.FullPath(),
			"error", err,
		)
	}
	response.Error(c, code, msg)
}

// RespondBindError 请求体解析失败
func RespondBindError(c *gin.Context, err error) {
	msg := "invalid request body"
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	RespondError(c, http.StatusBadRequest, msg, nil)
}
