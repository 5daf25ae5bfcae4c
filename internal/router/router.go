package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/campus-rent/internal/cache"
	"github.com/campus-rent/internal/config"
	adminhandlers "github.com/campus-rent/internal/http/handlers/admin"
	publichandlers "github.com/campus-rent/internal/http/handlers/public"
	"github.com/campus-rent/internal/http/response"
	"github.com/campus-rent/internal/logger"
	"github.com/campus-rent/internal/provider"

	"github.com/gin-gonic/gin"
)

// loginRateLimitRule 登录限流规则，按 邮箱|IP 计数
func loginRateLimitRule(cfg *config.Config) RateLimitRule {
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cr"
	}
	return RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}
}

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	loginRule := loginRateLimitRule(cfg)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})
	r.NoRoute(func(ctx *gin.Context) {
		response.Error(ctx, http.StatusNotFound, "route not found")
	})

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}
		apiV1.GET("/colleges", publicHandler.ListColleges)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(c.UserAuthService))
		{
			user.GET("/me", publicHandler.GetMe)
			user.GET("/me/products", publicHandler.ListMyProducts)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart", publicHandler.AddCartItem)
			user.PATCH("/cart", publicHandler.UpdateCartItem)
			user.DELETE("/cart", publicHandler.RemoveCartItem)

			user.GET("/addresses", publicHandler.ListAddresses)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PATCH("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			user.POST("/addresses/:id/default", publicHandler.SetDefaultAddress)

			user.POST("/checkout", publicHandler.Checkout)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/lending", publicHandler.ListLendingOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.PATCH("/orders/:id/status", publicHandler.UpdateOrderStatus)

			user.POST("/reviews", publicHandler.UpsertReview)
			user.POST("/reviews/:order_id", publicHandler.CreateOrderReview)
			user.DELETE("/reviews/:id", publicHandler.DeleteReview)

			user.GET("/products", publicHandler.ListProducts)
			user.POST("/products", publicHandler.CreateProduct)
			user.GET("/products/:id", publicHandler.GetProduct)
			user.PATCH("/products/:id", publicHandler.UpdateProduct)
			user.GET("/products/:id/reviews", publicHandler.ListProductReviews)

			user.POST("/lender-applications", publicHandler.ApplyLender)
			user.GET("/lender-applications/me", publicHandler.GetMyLenderApplication)
		}

		// 管理端接口（鉴权 + casbin）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(c.UserAuthService), AdminRBACMiddleware(c.AuthzService))
		{
			admin.GET("/lender-applications", adminHandler.ListLenderApplications)
			admin.POST("/lender-applications/:id/approve", adminHandler.ApproveLenderApplication)
			admin.POST("/lender-applications/:id/reject", adminHandler.RejectLenderApplication)

			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.PUT("/authz/users/:id/roles", adminHandler.SetUserRoles)
		}
	}

	return r
}
