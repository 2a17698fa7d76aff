package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车表（以会话令牌为键，结账成功后清空复用）
type Cart struct {
	ID         uint           `gorm:"primarykey" json:"id"`                               // 主键
	SessionKey string         `gorm:"uniqueIndex;type:varchar(64);not null" json:"session_key"` // 会话令牌
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Lines []CartLine `gorm:"foreignKey:CartID" json:"lines,omitempty"` // 购物车行
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartLine 购物车行（商品 + 规格 + 配料 + 数量的一条配置）
type CartLine struct {
	ID                uint                  `gorm:"primarykey" json:"id"`                                    // 主键
	CartID            uint                  `gorm:"index;not null" json:"cart_id"`                           // 购物车ID
	ProductID         uint                  `gorm:"index;not null" json:"product_id"`                        // 商品ID
	SizeID            *uint                 `gorm:"index" json:"size_id,omitempty"`                          // 规格ID（可空）
	Quantity          int                   `gorm:"not null;default:1" json:"quantity"`                      // 数量
	SelectedToppings  ToppingSnapshots      `gorm:"type:json" json:"selected_toppings"`                      // 配料快照
	UnitPrice         Money                 `gorm:"type:decimal(10,2);not null" json:"unit_price"`           // 加入时冻结的单价
	IncludeComboItems bool                  `gorm:"default:false" json:"include_combo_items"`                // 是否附带套餐项
	IncludedItems     IncludedItemSnapshots `gorm:"type:json" json:"included_items"`                         // 套餐附带项快照
	CreatedAt         time.Time             `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt         time.Time             `json:"updated_at"`                                              // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
	Size    *Size    `gorm:"foreignKey:SizeID" json:"size,omitempty"`       // 关联规格
}

// TableName 指定表名
func (CartLine) TableName() string {
	return "cart_lines"
}

// Subtotal 行小计：(单价 + 配料合计) × 数量
func (l *CartLine) Subtotal() Money {
	return l.UnitPrice.AddMoney(l.SelectedToppings.Total()).MulInt(l.Quantity)
}
