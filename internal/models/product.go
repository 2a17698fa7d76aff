package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`                                    // 主键
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`                       // 分类ID
	Name             string         `gorm:"not null;index" json:"name"`                              // 商品名
	Slug             string         `gorm:"uniqueIndex" json:"slug"`                                 // 唯一标识
	Description      string         `gorm:"type:text" json:"description"`                            // 描述
	ShortDescription string         `gorm:"type:varchar(255)" json:"short_description"`              // 简短宣传语
	BasePrice        Money          `gorm:"type:decimal(10,2);not null;default:0" json:"base_price"` // 基础价（最小规格）
	SalePrice        *Money         `gorm:"type:decimal(10,2)" json:"sale_price,omitempty"`          // 促销价
	SaleStartAt      *time.Time     `gorm:"index" json:"sale_start_at,omitempty"`                    // 促销开始时间（空则立即生效）
	SaleEndAt        *time.Time     `gorm:"index" json:"sale_end_at,omitempty"`                      // 促销结束时间（空则不结束）
	IsAvailable      bool           `gorm:"index" json:"is_available"`                               // 是否可售（列默认会吞掉 false，默认值由创建方写入）
	IsFeatured       bool           `gorm:"default:false;index" json:"is_featured"`                  // 是否首页推荐
	IsCombo          bool           `gorm:"default:false" json:"is_combo"`                           // 是否套餐（附带其他项）
	PrepTimeMin      int            `gorm:"default:15" json:"prep_time_min"`                         // 最短备餐时间（分钟）
	PrepTimeMax      int            `gorm:"default:20" json:"prep_time_max"`                         // 最长备餐时间（分钟）
	Calories         *int           `json:"calories,omitempty"`                                      // 每份热量（可选）
	Barcode          *string        `gorm:"uniqueIndex;type:varchar(50)" json:"barcode,omitempty"`   // 条码
	SKU              *string        `gorm:"uniqueIndex;type:varchar(50)" json:"sku,omitempty"`       // SKU 编码
	TrackInventory   bool           `gorm:"default:false" json:"track_inventory"`                    // 是否跟踪库存
	ReorderLevel     int            `gorm:"default:10" json:"reorder_level"`                         // 补货告警阈值
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt        time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	// 关联
	Category          Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`                // 分类信息
	Tags              []Tag          `gorm:"many2many:product_tags" json:"tags,omitempty"`                   // 标签
	Ingredients       []Ingredient   `gorm:"many2many:product_ingredients" json:"ingredients,omitempty"`     // 基础原料
	IncludedItems     []IncludedItem `gorm:"many2many:product_included_items" json:"included_items,omitempty"` // 套餐附带项
	AvailableSizes    []Size         `gorm:"many2many:product_sizes" json:"available_sizes,omitempty"`       // 可选规格
	AvailableToppings []Topping      `gorm:"many2many:product_toppings" json:"available_toppings,omitempty"` // 可选配料
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// IsOnSale 判断当前时间是否处于促销窗口（边界开放）
func (p *Product) IsOnSale(now time.Time) bool {
	if p.SalePrice == nil {
		return false
	}
	if p.SaleStartAt != nil && now.Before(*p.SaleStartAt) {
		return false
	}
	if p.SaleEndAt != nil && now.After(*p.SaleEndAt) {
		return false
	}
	return true
}

// CurrentBasePrice 当前生效的基础价（促销期内返回促销价）
func (p *Product) CurrentBasePrice(now time.Time) Money {
	if p.IsOnSale(now) {
		return *p.SalePrice
	}
	return p.BasePrice
}

// AllowsSize 判断规格是否在商品可选规格集合内
func (p *Product) AllowsSize(sizeID uint) bool {
	for i := range p.AvailableSizes {
		if p.AvailableSizes[i].ID == sizeID {
			return true
		}
	}
	return false
}

// AllowsTopping 判断配料是否在商品可选配料集合内
func (p *Product) AllowsTopping(toppingID uint) bool {
	for i := range p.AvailableToppings {
		if p.AvailableToppings[i].ID == toppingID {
			return true
		}
	}
	return false
}

// IncludedItemSnapshots 生成套餐附带项快照
func (p *Product) IncludedItemSnapshots() IncludedItemSnapshots {
	snapshots := make(IncludedItemSnapshots, 0, len(p.IncludedItems))
	for _, item := range p.IncludedItems {
		snapshots = append(snapshots, IncludedItemSnapshot{ID: item.ID, Name: item.Name})
	}
	return snapshots
}
