package models

import (
	"time"
)

// College 学校，注册邮箱后缀决定用户归属
type College struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                       // 主键
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`                     // 学校名称
	EmailDomain string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email_domain"` // 邮箱后缀（如 mit.edu）
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`                        // 是否开放注册
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                 // 更新时间
}

// TableName 指定表名
func (College) TableName() string {
	return "colleges"
}
