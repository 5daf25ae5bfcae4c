package repository

import (
	"errors"
	"strings"

	"github.com/campus-rent/internal/models"

	"gorm.io/gorm"
)

// CollegeRepository 学校数据访问接口
type CollegeRepository interface {
	GetByID(id uint) (*models.College, error)
	GetByEmailDomain(domain string) (*models.College, error)
	ListActive() ([]models.College, error)
	Create(college *models.College) error
}

// GormCollegeRepository GORM 实现
type GormCollegeRepository struct {
	db *gorm.DB
}

// NewCollegeRepository 创建学校仓库
func NewCollegeRepository(db *gorm.DB) *GormCollegeRepository {
	return &GormCollegeRepository{db: db}
}

// GetByID 根据 ID 获取学校
func (r *GormCollegeRepository) GetByID(id uint) (*models.College, error) {
	var college models.College
	if err := r.db.First(&college, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &college, nil
}

// GetByEmailDomain 根据邮箱后缀获取学校
func (r *GormCollegeRepository) GetByEmailDomain(domain string) (*models.College, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, nil
	}
	var college models.College
	if err := r.db.Where("email_domain = ?", domain).First(&college).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &college, nil
}

// ListActive 列出开放注册的学校
func (r *GormCollegeRepository) ListActive() ([]models.College, error) {
	var colleges []models.College
	if err := r.db.Where("is_active = ?", true).Order("name asc").Find(&colleges).Error; err != nil {
		return nil, err
	}
	return colleges, nil
}

// Create 创建学校
func (r *GormCollegeRepository) Create(college *models.College) error {
	return r.db.Create(college).Error
}
