package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（下单时刻的深快照，之后商品改价改名不影响历史订单）
type OrderItem struct {
	ID               uint                  `gorm:"primarykey" json:"id"`                           // 主键
	OrderID          uint                  `gorm:"index;not null" json:"order_id"`                 // 订单ID
	ProductID        uint                  `gorm:"index;not null" json:"product_id"`               // 商品ID（仅用于统计追溯）
	ProductName      string                `gorm:"not null" json:"product_name"`                   // 商品名快照
	IsCombo          bool                  `gorm:"default:false" json:"is_combo"`                  // 是否套餐
	IncludedItems    IncludedItemSnapshots `gorm:"type:json" json:"included_items"`                // 套餐内含项快照
	SizeID           *uint                 `json:"size_id,omitempty"`                              // 规格ID
	SizeName         *string               `json:"size_name,omitempty"`                            // 规格名快照
	SelectedToppings ToppingSnapshots      `gorm:"type:json" json:"selected_toppings"`             // 配料快照
	UnitPrice        Money                 `gorm:"type:decimal(10,2);not null" json:"unit_price"`  // 单价快照（含规格加价）
	Quantity         int                   `gorm:"not null" json:"quantity"`                       // 数量
	Subtotal         Money                 `gorm:"type:decimal(10,2);not null" json:"subtotal"`    // 行小计快照
	CreatedAt        time.Time             `json:"created_at"`                                     // 创建时间
	UpdatedAt        time.Time             `json:"updated_at"`                                     // 更新时间
	DeletedAt        gorm.DeletedAt        `gorm:"index" json:"-"`                                 // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
