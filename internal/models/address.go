package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货/取件地址
type Address struct {
	ID         uint           `gorm:"primarykey" json:"id"`                         // 主键
	UserID     uint           `gorm:"index;not null" json:"user_id"`                // 用户ID
	Line1      string         `gorm:"type:varchar(255);not null" json:"line1"`      // 地址行1
	Line2      string         `gorm:"type:varchar(255)" json:"line2,omitempty"`     // 地址行2
	City       string         `gorm:"type:varchar(100);not null" json:"city"`       // 城市
	State      string         `gorm:"type:varchar(100);not null" json:"state"`      // 州/省
	PostalCode string         `gorm:"type:varchar(32);not null" json:"postal_code"` // 邮编
	Country    string         `gorm:"type:varchar(100);not null" json:"country"`    // 国家
	IsDefault  bool           `gorm:"not null;default:false" json:"is_default"`     // 是否默认
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                   // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                               // 软删除时间（已下单地址仍可被订单引用）
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
