package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusPickedUp  = "picked_up"
	OrderStatusCancelled = "cancelled"
)

// 订单履约方式常量
const (
	OrderTypeDelivery = "delivery"
	OrderTypePickup   = "pickup"
)

// 优惠类型常量
const (
	DiscountTypePercentage   = "percentage"
	DiscountTypeFixed        = "fixed"
	DiscountTypeFreeDelivery = "free_delivery"
)

// 库存变动类型常量
const (
	MovementTypeSale       = "sale"
	MovementTypeAdjustment = "adjustment"
	MovementTypeReceipt    = "receipt"
	MovementTypeReturn     = "return"
	MovementTypeDamaged    = "damaged"
	MovementTypeTransfer   = "transfer"
)

// 库存告警状态常量
const (
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
)

// 员工角色常量
const (
	StaffRoleAdmin = "admin"
	StaffRoleStaff = "staff"
)

// 队列常量
const (
	QueueDefault        = "default"
	TaskOrderPlaced     = "order:placed"
	TaskStockAlertRaise = "stock:alert_raised"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "pz"
)

// 设置键常量
const (
	SettingKeyStoreConfig = "store_config"
)

// 店铺默认配置常量
const (
	DefaultStoreName             = "Marina Pizza & Pasta"
	DefaultDeliveryFee           = "5.00"
	DefaultFreeDeliveryThreshold = "50.00"
	DefaultMinimumOrderAmount    = "15.00"
	DefaultDeliveryRadiusKM      = 10.0
	DefaultDeliveryMinutes       = 45
	DefaultPickupMinutes         = 20
)

// 合法订单状态集合（含展示顺序）
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusDelivered,
	OrderStatusPickedUp,
	OrderStatusCancelled,
}

// IsValidOrderStatus 判断是否为合法订单状态
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsCompletedOrderStatus 判断是否为完成态（delivered / picked_up）
func IsCompletedOrderStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusPickedUp
}

// IsValidMovementType 判断是否为合法库存变动类型
func IsValidMovementType(kind string) bool {
	switch kind {
	case MovementTypeSale, MovementTypeAdjustment, MovementTypeReceipt,
		MovementTypeReturn, MovementTypeDamaged, MovementTypeTransfer:
		return true
	}
	return false
}
