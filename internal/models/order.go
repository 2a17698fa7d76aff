package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（创建后除状态与完成时间外不可变）
type Order struct {
	ID                   uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo              string         `gorm:"uniqueIndex;type:varchar(20);not null" json:"order_no"`        // 订单编号（ORD-YYYYMMDD-XXXX）
	CustomerName         string         `gorm:"not null" json:"customer_name"`                                // 顾客姓名
	CustomerEmail        string         `gorm:"index;not null" json:"customer_email"`                         // 顾客邮箱
	CustomerPhone        string         `gorm:"type:varchar(20);not null" json:"customer_phone"`              // 顾客电话
	OrderType            string         `gorm:"type:varchar(10);not null" json:"order_type"`                  // 履约方式（delivery/pickup）
	Status               string         `gorm:"index;not null" json:"status"`                                 // 订单状态
	OrderNotes           string         `gorm:"type:text" json:"order_notes"`                                 // 订单备注
	DeliveryAddress      string         `gorm:"type:text" json:"delivery_address"`                            // 配送地址
	DeliveryInstructions string         `gorm:"type:text" json:"delivery_instructions"`                       // 配送说明
	Subtotal             Money          `gorm:"type:decimal(10,2);not null" json:"subtotal"`                  // 商品小计
	DeliveryFee          Money          `gorm:"type:decimal(10,2);not null;default:0" json:"delivery_fee"`    // 配送费
	DiscountAmount       Money          `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"` // 优惠金额
	DiscountCode         *string        `gorm:"type:varchar(50)" json:"discount_code,omitempty"`              // 使用的优惠码
	Total                Money          `gorm:"type:decimal(10,2);not null" json:"total"`                     // 实付金额
	CartSessionKey       string         `gorm:"type:varchar(64)" json:"cart_session_key"`                     // 下单购物车会话（留痕）
	CompletedAt          *time.Time     `json:"completed_at,omitempty"`                                       // 完成时间
	CreatedAt            time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt            time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
