package constants

// 租赁订单状态常量
const (
	OrderStatusPendingPayment = "PENDING_PAYMENT"
	OrderStatusActive         = "ACTIVE"
	OrderStatusCompleted      = "COMPLETED"
	OrderStatusCancelled      = "CANCELLED"
)

// 出借人申请状态常量
const (
	LenderApplicationPending  = "PENDING"
	LenderApplicationApproved = "APPROVED"
	LenderApplicationRejected = "REJECTED"
)

// 用户角色
const (
	UserRoleStudent = "student"
	UserRoleAdmin   = "admin"
)

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 商品分类
const (
	CategoryElectronics = "electronics"
	CategoryBooks       = "books"
	CategoryFurniture   = "furniture"
	CategoryOther       = "other"
)

// 下单通知投递方式
const (
	NotificationModeInline = "inline"
	NotificationModeQueue  = "queue"
)

// 评分范围
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// 队列与任务类型
const (
	QueueDefault          = "default"
	TaskOrderPlacedNotify = "order:placed_notify"
)
