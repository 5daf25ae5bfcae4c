package models

import (
	"time"
)

// LenderApplication 出借人资质申请
type LenderApplication struct {
	ID              uint       `gorm:"primarykey" json:"id"`                               // 主键
	UserID          uint       `gorm:"index;not null" json:"user_id"`                      // 申请人
	StudentIDNumber string     `gorm:"type:varchar(64);not null" json:"student_id_number"` // 学号
	IDCardURL       string     `gorm:"type:varchar(500)" json:"id_card_url"`               // 学生证图片
	Reason          string     `gorm:"type:text" json:"reason"`                            // 申请说明
	Status          string     `gorm:"type:varchar(20);index;not null" json:"status"`      // 审核状态
	ReviewerID      *uint      `gorm:"index" json:"reviewer_id,omitempty"`                 // 审核管理员
	ReviewNote      string     `gorm:"type:text" json:"review_note,omitempty"`             // 审核备注
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`                              // 审核时间
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt       time.Time  `json:"updated_at"`                                         // 更新时间

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 申请人信息
}

// TableName 指定表名
func (LenderApplication) TableName() string {
	return "lender_applications"
}
