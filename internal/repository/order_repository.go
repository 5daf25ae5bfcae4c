package repository

import (
	"errors"
	"strings"

	"github.com/campus-rent/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 租赁订单数据访问接口
type OrderRepository interface {
	Create(order *models.RentalOrder, items []models.RentalOrderItem) error
	GetByID(id uint) (*models.RentalOrder, error)
	GetByIDForUpdate(id uint) (*models.RentalOrder, error)
	GetByIDAndUser(id, userID uint) (*models.RentalOrder, error)
	GetDetail(id uint) (*models.RentalOrder, error)
	List(filter OrderListFilter) ([]models.RentalOrder, int64, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormOrderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	})
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.RentalOrder, items []models.RentalOrderItem) error {
	if err := r.db.Omit("Items", "ShippingAddress", "User").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// GetByID 根据 ID 获取订单及订单项
func (r *GormOrderRepository) GetByID(id uint) (*models.RentalOrder, error) {
	var order models.RentalOrder
	if err := r.withItems(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDForUpdate 加锁读取订单及订单项，用于状态流转
func (r *GormOrderRepository) GetByIDForUpdate(id uint) (*models.RentalOrder, error) {
	var order models.RentalOrder
	if err := r.withItems(forUpdate(r.db)).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser 获取租借人自己的订单
func (r *GormOrderRepository) GetByIDAndUser(id, userID uint) (*models.RentalOrder, error) {
	var order models.RentalOrder
	if err := r.withItems(r.db).Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetDetail 获取订单完整信息（订单项、收货地址、租借人）
func (r *GormOrderRepository) GetDetail(id uint) (*models.RentalOrder, error) {
	var order models.RentalOrder
	query := r.withItems(r.db).
		Preload("ShippingAddress", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		Preload("User")
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 订单列表，可按租借人或出借人过滤
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.RentalOrder, int64, error) {
	query := r.db.Model(&models.RentalOrder{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OwnerID != 0 {
		sub := r.db.Model(&models.RentalOrderItem{}).Select("order_id").Where("owner_id = ?", filter.OwnerID)
		query = query.Where("id IN (?)", sub)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.RentalOrder
	query = applyPagination(r.withItems(query), filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.RentalOrder{}).Where("id = ?", id).Updates(updates).Error
}
