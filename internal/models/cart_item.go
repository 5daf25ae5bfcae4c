package models

import (
	"time"
)

// CartItem 购物车项，价格在加入时快照，之后不随商品变动
type CartItem struct {
	ID                    uint      `gorm:"primarykey" json:"id"`                                         // 主键
	CartID                uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`         // 购物车ID
	ProductID             uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`      // 商品ID
	Quantity              int       `gorm:"not null" json:"quantity"`                                     // 数量
	DurationMonths        int       `gorm:"not null" json:"duration_months"`                              // 租期（月）
	PricePerMonth         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_per_month"` // 月租金快照
	OriginalPricePerMonth *Money    `gorm:"type:decimal(20,2)" json:"original_price_per_month,omitempty"` // 原价快照
	CreatedAt             time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt             time.Time `json:"updated_at"`                                                   // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
