package public

import (
	"net/http"
	"time"

	handlershared "github.com/campus-rent/internal/http/handlers/shared"
	"github.com/campus-rent/internal/http/response"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
	Phone       string `json:"phone"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Register 学生注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}
	handlershared.RequestLog(c).Infow("user_registered", "user_id", user.ID, "college_id", user.CollegeID)
	response.Created(c, AuthResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.Success(c, AuthResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

// GetMe 当前用户信息
func (h *Handler) GetMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	response.Success(c, user)
}

// ListColleges 开放注册的学校列表
func (h *Handler) ListColleges(c *gin.Context) {
	colleges, err := h.CollegeService.ListActive()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load colleges", err)
		return
	}
	response.Success(c, colleges)
}
