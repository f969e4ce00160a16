package models

import "time"

// Record 表示一笔收支记录
// 金额用分存储，避免浮点误差，比如 12.34 元 = 1234 分
type Record struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	CategoryID  *uint     `gorm:"index" json:"categoryId,omitempty"`
	Type        string    `gorm:"size:16;index;not null" json:"type"` // INCOME / EXPENSE
	AmountCent  int64     `gorm:"not null" json:"-"`                  // 金额（分），用于内部计算
	RecordDate  time.Time `gorm:"index;not null" json:"-"`            // 记账日期（只取日期部分）
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	Category *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
}
