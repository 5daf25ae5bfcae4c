package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 出租物品
//
// Rating 与 RatingCount 是由评价汇总得出的缓存字段，只能由评价服务写入。
type Product struct {
	ID                    uint           `gorm:"primarykey" json:"id"`                                              // 主键
	OwnerID               uint           `gorm:"index;not null" json:"owner_id"`                                    // 出借人
	CollegeID             uint           `gorm:"index;not null" json:"college_id"`                                  // 所属学校（继承自出借人）
	Title                 string         `gorm:"type:varchar(200);not null" json:"title"`                           // 标题
	Description           string         `gorm:"type:text" json:"description"`                                      // 描述
	Category              string         `gorm:"type:varchar(32);index;not null;default:'other'" json:"category"`   // 分类
	BasePricePerMonth     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price_per_month"` // 月租金
	OriginalPricePerMonth *Money         `gorm:"type:decimal(20,2)" json:"original_price_per_month,omitempty"`      // 原价（划线价）
	Images                StringArray    `gorm:"type:json" json:"images"`                                           // 图片地址
	IsActive              bool           `gorm:"default:true;index" json:"is_active"`                               // 是否上架
	Rating                float64        `gorm:"not null;default:0" json:"rating"`                                  // 平均评分
	RatingCount           int            `gorm:"not null;default:0" json:"rating_count"`                            // 评价数
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`                                           // 创建时间
	UpdatedAt             time.Time      `json:"updated_at"`                                                        // 更新时间
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`                                                    // 软删除时间

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"` // 出借人信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
