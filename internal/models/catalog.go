package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类表
type Category struct {
	ID           uint           `gorm:"primarykey" json:"id"`                // 主键
	Name         string         `gorm:"uniqueIndex;not null" json:"name"`    // 分类名
	Slug         string         `gorm:"uniqueIndex" json:"slug"`             // 唯一标识
	Description  string         `gorm:"type:text" json:"description"`        // 描述
	DisplayOrder int            `gorm:"default:0;index" json:"display_order"` // 菜单展示顺序
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                          // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间

	Sizes []Size `gorm:"foreignKey:CategoryID" json:"sizes,omitempty"` // 该分类下的规格
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// Tag 商品标签表（如 Meat / Vegetarian / Chicken）
type Tag struct {
	ID    uint   `gorm:"primarykey" json:"id"`                            // 主键
	Name  string `gorm:"uniqueIndex;not null" json:"name"`                // 标签名
	Slug  string `gorm:"uniqueIndex;not null" json:"slug"`                // 唯一标识
	Color string `gorm:"type:varchar(7);default:'#000000'" json:"color"` // 前端展示颜色
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}

// Ingredient 基础原料表（商品详情展示用）
type Ingredient struct {
	ID   uint   `gorm:"primarykey" json:"id"`             // 主键
	Name string `gorm:"uniqueIndex;not null" json:"name"` // 原料名
	Icon string `gorm:"type:varchar(50)" json:"icon"`     // Emoji 或图标名
}

// TableName 指定表名
func (Ingredient) TableName() string {
	return "ingredients"
}

// IncludedItem 套餐附带项表（如薯条、沙拉）
type IncludedItem struct {
	ID   uint   `gorm:"primarykey" json:"id"` // 主键
	Name string `gorm:"not null" json:"name"` // 名称
}

// TableName 指定表名
func (IncludedItem) TableName() string {
	return "included_items"
}

// Size 商品规格表（规格价格差相对商品基础价，可为负）
type Size struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                          // 主键
	Name          string    `gorm:"not null;uniqueIndex:idx_size_name_category" json:"name"`       // 规格名（Small/Large/Can 等）
	CategoryID    uint      `gorm:"not null;index;uniqueIndex:idx_size_name_category" json:"category_id"` // 所属分类ID
	PriceModifier Money     `gorm:"type:decimal(10,2);not null;default:0" json:"price_modifier"`   // 规格差价
	DisplayOrder  int       `gorm:"default:0;index" json:"display_order"`                          // 展示顺序
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                       // 创建时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 关联分类
}

// TableName 指定表名
func (Size) TableName() string {
	return "sizes"
}

// Topping 配料表（固定加价）
type Topping struct {
	ID        uint           `gorm:"primarykey" json:"id"`                          // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`              // 配料名
	Price     Money          `gorm:"type:decimal(10,2);not null" json:"price"`      // 加价金额
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Topping) TableName() string {
	return "toppings"
}
