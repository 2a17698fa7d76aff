package models

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pizzeria-next/internal/constants"
)

// Promotion 优惠码表
type Promotion struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                     // 主键
	Code               string         `gorm:"uniqueIndex;type:varchar(50);not null" json:"code"`        // 优惠码（存储统一大写）
	Description        string         `gorm:"type:text" json:"description"`                             // 描述
	DiscountType       string         `gorm:"type:varchar(20);not null" json:"discount_type"`           // 优惠类型（percentage/fixed/free_delivery）
	DiscountValue      Money          `gorm:"type:decimal(10,2);not null" json:"discount_value"`        // 优惠值（百分比或固定金额）
	MinimumOrderAmount *Money         `gorm:"type:decimal(10,2)" json:"minimum_order_amount,omitempty"` // 最低消费门槛
	MaximumDiscount    *Money         `gorm:"type:decimal(10,2)" json:"maximum_discount,omitempty"`     // 百分比优惠封顶
	UsageLimit         int            `gorm:"default:0" json:"usage_limit"`                             // 使用次数上限（0 不限）
	TimesUsed          int            `gorm:"default:0" json:"times_used"`                              // 已使用次数
	ValidFrom          *time.Time     `json:"valid_from,omitempty"`                                     // 生效时间
	ValidUntil         *time.Time     `json:"valid_until,omitempty"`                                    // 失效时间
	IsActive           bool           `gorm:"index" json:"is_active"`                                   // 是否启用（默认值由创建方写入，列默认会吞掉 false）
	ApplyToBasePrice   bool           `json:"apply_to_base_price"`                                      // 折扣基数含商品单价
	ApplyToToppings    bool           `json:"apply_to_toppings"`                                        // 折扣基数含配料
	ApplyToIncluded    bool           `json:"apply_to_included_items"`                                  // 折扣基数含套餐内含项（内含项无价，当前不影响计算）
	ApplyToEntireOrder bool           `json:"apply_to_entire_order"`                                    // 全单可用（忽略商品限定）
	CreatedAt          time.Time      `json:"created_at"`                                               // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                               // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                           // 软删除时间

	ApplicableProducts []Product `gorm:"many2many:promotion_products" json:"applicable_products,omitempty"` // 限定商品（空表示不限定）
}

// TableName 指定表名
func (Promotion) TableName() string {
	return "promotions"
}

// NormalizeCode 优惠码统一大写去空格
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsExhausted 使用次数是否已耗尽
func (p *Promotion) IsExhausted() bool {
	return p.UsageLimit > 0 && p.TimesUsed >= p.UsageLimit
}

// RestrictsProducts 是否限定了商品范围
func (p *Promotion) RestrictsProducts() bool {
	return !p.ApplyToEntireOrder && len(p.ApplicableProducts) > 0
}

// AppliesToProduct 商品是否在适用范围内
func (p *Promotion) AppliesToProduct(productID uint) bool {
	if !p.RestrictsProducts() {
		return true
	}
	for _, prod := range p.ApplicableProducts {
		if prod.ID == productID {
			return true
		}
	}
	return false
}

// IsFreeDelivery 是否免配送费类型
func (p *Promotion) IsFreeDelivery() bool {
	return p.DiscountType == constants.DiscountTypeFreeDelivery
}
