package models

import (
	"time"

	"gorm.io/gorm"
)

// StockItem 库存项表（商品一对一）
type StockItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                   // 主键
	ProductID       uint           `gorm:"uniqueIndex;not null" json:"product_id"` // 商品ID
	Quantity        int            `gorm:"not null;default:0" json:"quantity"`     // 当前库存
	ReorderLevel    int            `gorm:"default:10" json:"reorder_level"`        // 补货阈值
	ReorderQuantity int            `gorm:"default:20" json:"reorder_quantity"`     // 建议补货量
	LastRestockedAt *time.Time     `json:"last_restocked_at,omitempty"`            // 最近入库时间
	CreatedAt       time.Time      `json:"created_at"`                             // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (StockItem) TableName() string {
	return "stock_items"
}

// IsLow 库存是否低于补货阈值
func (s *StockItem) IsLow() bool {
	return s.Quantity <= s.ReorderLevel
}

// StockMovement 库存流水表（只追加）
type StockMovement struct {
	ID             uint      `gorm:"primarykey" json:"id"`                           // 主键
	StockItemID    uint      `gorm:"index;not null" json:"stock_item_id"`            // 库存项ID
	MovementType   string    `gorm:"type:varchar(20);not null" json:"movement_type"` // 流水类型
	QuantityDelta  int       `gorm:"not null" json:"quantity_delta"`                 // 变动量（正入负出）
	QuantityBefore int       `gorm:"not null" json:"quantity_before"`                // 变动前库存
	QuantityAfter  int       `gorm:"not null" json:"quantity_after"`                 // 变动后库存
	Reference      string    `gorm:"type:varchar(64)" json:"reference"`              // 关联单据（如订单号）
	Notes          string    `gorm:"type:text" json:"notes"`                         // 备注
	ActorID        *uint     `json:"actor_id,omitempty"`                             // 操作员工ID（系统扣减为空）
	ActorName      string    `gorm:"type:varchar(50)" json:"actor_name"`             // 操作者名称（system 表示系统）
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                        // 创建时间
}

// TableName 指定表名
func (StockMovement) TableName() string {
	return "stock_movements"
}

// StockAlert 低库存告警表
type StockAlert struct {
	ID              uint           `gorm:"primarykey" json:"id"`                          // 主键
	StockItemID     uint           `gorm:"index;not null" json:"stock_item_id"`           // 库存项ID
	Status          string         `gorm:"type:varchar(20);not null;index" json:"status"` // 告警状态（active/acknowledged/resolved）
	QuantityAtRaise int            `gorm:"not null" json:"quantity_at_raise"`             // 触发时库存
	AcknowledgedBy  *uint          `json:"acknowledged_by,omitempty"`                     // 确认员工ID
	AcknowledgedAt  *time.Time     `json:"acknowledged_at,omitempty"`                     // 确认时间
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`                         // 解除时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                    // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间

	StockItem *StockItem `gorm:"foreignKey:StockItemID" json:"stock_item,omitempty"` // 关联库存项
}

// TableName 指定表名
func (StockAlert) TableName() string {
	return "stock_alerts"
}
