package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"

	"gorm.io/gorm"
)

// OrderStats 订单统计结果
type OrderStats struct {
	StatusCounts  map[string]int64 `json:"status_counts"`
	TodayOrders   int64            `json:"today_orders"`
	TodayRevenue  models.Money     `json:"today_revenue"`
	PendingOrders int64            `json:"pending_orders"`
}

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	Update(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ExistsOrderNo(orderNo string) (bool, error)
	Stats(now time.Time) (*OrderStats, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建订单（连同订单项）
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// Update 更新订单
func (r *GormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 根据订单编号获取订单
func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").
		Where("order_no = ?", strings.ToUpper(strings.TrimSpace(orderNo))).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 订单列表
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order

	query := r.db.Model(&models.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrderType != "" {
		query = query.Where("order_type = ?", filter.OrderType)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", strings.ToUpper(strings.TrimSpace(filter.OrderNo)))
	}
	if filter.CustomerEmail != "" {
		query = query.Where("customer_email = ?", strings.ToLower(strings.TrimSpace(filter.CustomerEmail)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("order_no LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", like, like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Items").Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// ExistsOrderNo 订单编号是否已存在
func (r *GormOrderRepository) ExistsOrderNo(orderNo string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("order_no = ?", orderNo).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Stats 订单统计（按状态分布与当日营收）
func (r *GormOrderRepository) Stats(now time.Time) (*OrderStats, error) {
	stats := &OrderStats{
		StatusCounts: make(map[string]int64, len(constants.OrderStatuses)),
		TodayRevenue: models.ZeroMoney(),
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	if err := r.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.StatusCounts[row.Status] = row.Count
	}
	stats.PendingOrders = stats.StatusCounts[constants.OrderStatusPending]

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := r.db.Model(&models.Order{}).
		Where("created_at >= ? AND status != ?", dayStart, constants.OrderStatusCancelled).
		Count(&stats.TodayOrders).Error; err != nil {
		return nil, err
	}

	var revenue struct {
		Total string
	}
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("created_at >= ? AND status != ?", dayStart, constants.OrderStatusCancelled).
		Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stats.TodayRevenue = models.NewMoneyFromString(revenue.Total)

	return stats, nil
}
