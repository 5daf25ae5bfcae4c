package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                    // 主键
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`                       // 邮箱
	PasswordHash string         `gorm:"not null" json:"-"`                                       // 密码哈希（不返回给前端）
	DisplayName  string         `gorm:"default:''" json:"display_name"`                          // 昵称
	Phone        string         `gorm:"type:varchar(32);default:''" json:"phone"`                // 联系电话
	CollegeID    uint           `gorm:"index;not null" json:"college_id"`                        // 所属学校
	Role         string         `gorm:"type:varchar(20);not null;default:'student'" json:"role"` // 角色（student/admin）
	IsLender     bool           `gorm:"not null;default:false" json:"is_lender"`                 // 是否已通过出借人审核
	Status       string         `gorm:"default:'active'" json:"status"`                          // 账号状态
	LastLoginAt  *time.Time     `json:"last_login_at"`                                           // 最后登录时间
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	College *College `gorm:"foreignKey:CollegeID" json:"college,omitempty"` // 学校
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
