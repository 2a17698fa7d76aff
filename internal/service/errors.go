package service

import "errors"

// 服务层统一错误定义，处理器通过映射表转换为响应码。
var (
	// 目录
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSizeNotFound     = errors.New("size not found")
	ErrToppingNotFound  = errors.New("topping not found")

	// 定价
	ErrInvalidSizeForProduct    = errors.New("size not allowed for product")
	ErrInvalidToppingForProduct = errors.New("topping not allowed for product")

	// 购物车
	ErrProductUnavailable = errors.New("product unavailable")
	ErrCartLineNotFound   = errors.New("cart line not found")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrEmptyCart          = errors.New("cart is empty")

	// 结算
	ErrInvalidOrderType       = errors.New("invalid order type")
	ErrMissingDeliveryAddress = errors.New("delivery address required")
	ErrBelowMinimumOrder      = errors.New("order below minimum amount")
	ErrOrderingClosed         = errors.New("store not accepting orders")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidOrderStatus     = errors.New("invalid order status")
	ErrOrderStatusTerminal    = errors.New("order status is terminal")

	// 优惠码
	ErrPromotionInvalid  = errors.New("promotion invalid")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrPromotionConflict = errors.New("promotion code already exists")
	ErrInvalidDiscount   = errors.New("invalid discount definition")

	// 库存
	ErrStockItemNotFound   = errors.New("stock item not found")
	ErrStockAlertNotFound  = errors.New("stock alert not found")
	ErrInvalidMovementType = errors.New("invalid movement type")

	// 条码
	ErrBarcodeConflict = errors.New("barcode already assigned")
	ErrSKUConflict     = errors.New("sku already assigned")

	// 权限与认证
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStaffDisabled      = errors.New("staff account disabled")
)
