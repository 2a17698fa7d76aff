package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page          int
	PageSize      int
	CategoryID    uint
	Search        string
	Tag           string
	OnlyAvailable bool
	OnlyFeatured  bool
	WithRelations bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	Status        string
	OrderType     string
	OrderNo       string
	CustomerEmail string
	Search        string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
}

// PromotionListFilter 查询优惠码列表的过滤条件
type PromotionListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// StockMovementListFilter 查询库存流水列表的过滤条件
type StockMovementListFilter struct {
	Page         int
	PageSize     int
	StockItemID  uint
	MovementType string
	Reference    string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// StockAlertListFilter 查询库存告警列表的过滤条件
type StockAlertListFilter struct {
	Page     int
	PageSize int
	Status   string
}
