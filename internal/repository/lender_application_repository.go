package repository

import (
	"errors"
	"strings"

	"github.com/campus-rent/internal/models"

	"gorm.io/gorm"
)

// LenderApplicationRepository 出借人申请数据访问接口
type LenderApplicationRepository interface {
	GetByID(id uint) (*models.LenderApplication, error)
	GetLatestByUser(userID uint) (*models.LenderApplication, error)
	Create(app *models.LenderApplication) error
	UpdateReview(id uint, fromStatus string, updates map[string]interface{}) (int64, error)
	List(filter LenderApplicationListFilter) ([]models.LenderApplication, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) LenderApplicationRepository
}

// GormLenderApplicationRepository GORM 实现
type GormLenderApplicationRepository struct {
	db *gorm.DB
}

// NewLenderApplicationRepository 创建出借人申请仓库
func NewLenderApplicationRepository(db *gorm.DB) *GormLenderApplicationRepository {
	return &GormLenderApplicationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLenderApplicationRepository) WithTx(tx *gorm.DB) LenderApplicationRepository {
	if tx == nil {
		return r
	}
	return &GormLenderApplicationRepository{db: tx}
}

// Transaction 执行事务
func (r *GormLenderApplicationRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetByID 根据 ID 获取申请
func (r *GormLenderApplicationRepository) GetByID(id uint) (*models.LenderApplication, error) {
	var app models.LenderApplication
	if err := r.db.First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

// GetLatestByUser 获取用户最近一次申请
func (r *GormLenderApplicationRepository) GetLatestByUser(userID uint) (*models.LenderApplication, error) {
	var app models.LenderApplication
	if err := r.db.Where("user_id = ?", userID).Order("id desc").First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

// Create 创建申请
func (r *GormLenderApplicationRepository) Create(app *models.LenderApplication) error {
	return r.db.Create(app).Error
}

// UpdateReview 仅当状态仍为 fromStatus 时写入审核结果，返回受影响行数
func (r *GormLenderApplicationRepository) UpdateReview(id uint, fromStatus string, updates map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.LenderApplication{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// List 申请列表
func (r *GormLenderApplicationRepository) List(filter LenderApplicationListFilter) ([]models.LenderApplication, int64, error) {
	query := r.db.Model(&models.LenderApplication{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var apps []models.LenderApplication
	query = applyPagination(query.Preload("User"), filter.Page, filter.PageSize)
	if err := query.Order("id asc").Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}
