package provider

import (
	"github.com/campus-rent/internal/authz"
	"github.com/campus-rent/internal/cache"
	"github.com/campus-rent/internal/config"
	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/logger"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/queue"
	"github.com/campus-rent/internal/repository"
	"github.com/campus-rent/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo              repository.UserRepository
	CollegeRepo           repository.CollegeRepository
	ProductRepo           repository.ProductRepository
	CartRepo              repository.CartRepository
	AddressRepo           repository.AddressRepository
	OrderRepo             repository.OrderRepository
	ReviewRepo            repository.ReviewRepository
	LenderApplicationRepo repository.LenderApplicationRepository

	// Services
	AuthzService             *authz.Service
	UserAuthService          *service.UserAuthService
	CollegeService           *service.CollegeService
	ProductService           *service.ProductService
	CartService              *service.CartService
	AddressService           *service.AddressService
	OrderService             *service.OrderService
	ReviewService            *service.ReviewService
	LenderApplicationService *service.LenderApplicationService
	EmailService             *service.EmailService

	// EmailNotifier 同步邮件通知，队列 worker 也复用它
	EmailNotifier service.OrderNotifier
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CollegeRepo = repository.NewCollegeRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.LenderApplicationRepo = repository.NewLenderApplicationRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.EmailNotifier = service.NewEmailOrderNotifier(c.EmailService, c.UserRepo)

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.CollegeRepo)
	c.CollegeService = service.NewCollegeService(c.CollegeRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.UserRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.AddressRepo,
		c.orderNotifier(),
		service.OrderServiceOptions{StrictTransitions: c.Config.Order.StrictTransitions},
	)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.OrderRepo)
	c.LenderApplicationService = service.NewLenderApplicationService(c.LenderApplicationRepo, c.UserRepo)
}

// orderNotifier 按配置选择下单通知方式
func (c *Container) orderNotifier() service.OrderNotifier {
	mode := c.Config.Notification.Mode
	switch {
	case mode == constants.NotificationModeQueue && c.QueueClient != nil:
		logger.Infow("provider_order_notifier_selected", "mode", "queue")
		return service.NewQueueOrderNotifier(c.QueueClient)
	case c.Config.Email.Enabled:
		if mode == constants.NotificationModeQueue {
			logger.Warnw("provider_order_notifier_queue_unavailable", "fallback", "inline")
		}
		logger.Infow("provider_order_notifier_selected", "mode", "inline")
		return c.EmailNotifier
	default:
		logger.Infow("provider_order_notifier_selected", "mode", "none")
		return service.NopOrderNotifier{}
	}
}
