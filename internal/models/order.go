package models

import (
	"time"
)

// RentalOrder 租赁订单
type RentalOrder struct {
	ID                uint       `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo           string     `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID            uint       `gorm:"index;not null" json:"user_id"`                             // 租借人
	TotalAmount       Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 总金额（创建后不可变）
	Status            string     `gorm:"index;not null" json:"status"`                              // 订单状态
	ShippingAddressID uint       `gorm:"index;not null" json:"shipping_address_id"`                 // 收货地址
	StartDate         *time.Time `json:"start_date"`                                                // 租期开始
	EndDate           *time.Time `json:"end_date"`                                                  // 租期结束
	CreatedAt         time.Time  `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt         time.Time  `gorm:"index" json:"updated_at"`                                   // 更新时间

	Items           []RentalOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`                      // 订单项
	ShippingAddress *Address          `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"` // 收货地址
	User            *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`                        // 租借人信息
}

// TableName 指定表名
func (RentalOrder) TableName() string {
	return "rental_orders"
}

// OwnerIDs 返回订单涉及的出借人（按首次出现顺序去重）
func (o *RentalOrder) OwnerIDs() []uint {
	if o == nil {
		return nil
	}
	seen := make(map[uint]struct{}, len(o.Items))
	result := make([]uint, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.OwnerID]; ok {
			continue
		}
		seen[item.OwnerID] = struct{}{}
		result = append(result, item.OwnerID)
	}
	return result
}

// HasOwner 判断用户是否为订单中任一物品的出借人
func (o *RentalOrder) HasOwner(userID uint) bool {
	if o == nil || userID == 0 {
		return false
	}
	for _, item := range o.Items {
		if item.OwnerID == userID {
			return true
		}
	}
	return false
}

// HasProduct 判断订单是否包含指定商品
func (o *RentalOrder) HasProduct(productID uint) bool {
	if o == nil {
		return false
	}
	for _, item := range o.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
