package models

import (
	"time"
)

// RentalOrderItem 订单项快照，创建后不可修改
type RentalOrderItem struct {
	ID                    uint      `gorm:"primarykey" json:"id"`                                         // 主键
	OrderID               uint      `gorm:"index;not null" json:"order_id"`                               // 订单ID
	ProductID             uint      `gorm:"index;not null" json:"product_id"`                             // 商品ID
	OwnerID               uint      `gorm:"index;not null" json:"owner_id"`                               // 出借人快照
	Title                 string    `gorm:"type:varchar(200);not null" json:"title"`                      // 标题快照
	Quantity              int       `gorm:"not null" json:"quantity"`                                     // 数量
	DurationMonths        int       `gorm:"not null" json:"duration_months"`                              // 租期（月）
	PricePerMonth         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_per_month"` // 月租金快照
	OriginalPricePerMonth *Money    `gorm:"type:decimal(20,2)" json:"original_price_per_month,omitempty"` // 原价快照
	CreatedAt             time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
}

// TableName 指定表名
func (RentalOrderItem) TableName() string {
	return "rental_order_items"
}

// LineTotal 行小计 = 数量 × 租期 × 月租金
func (i RentalOrderItem) LineTotal() Money {
	return LineTotal(i.Quantity, i.DurationMonths, i.PricePerMonth)
}
