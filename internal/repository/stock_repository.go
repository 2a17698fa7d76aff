package repository

import (
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository 库存数据访问接口
type StockRepository interface {
	ListItems(onlyLow bool) ([]models.StockItem, error)
	GetItemByID(id uint) (*models.StockItem, error)
	GetItemByProductID(productID uint) (*models.StockItem, error)
	GetItemForUpdate(id uint) (*models.StockItem, error)
	GetItemByProductIDForUpdate(productID uint) (*models.StockItem, error)
	CreateItem(item *models.StockItem) error
	UpdateItem(item *models.StockItem) error
	CreateMovement(movement *models.StockMovement) error
	ListMovements(filter StockMovementListFilter) ([]models.StockMovement, int64, error)
	GetActiveAlert(stockItemID uint) (*models.StockAlert, error)
	GetAlertByID(id uint) (*models.StockAlert, error)
	CreateAlert(alert *models.StockAlert) error
	UpdateAlert(alert *models.StockAlert) error
	ListAlerts(filter StockAlertListFilter) ([]models.StockAlert, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) StockRepository
}

// GormStockRepository GORM 实现
type GormStockRepository struct {
	db *gorm.DB
}

// NewStockRepository 创建库存仓库
func NewStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStockRepository) WithTx(tx *gorm.DB) StockRepository {
	if tx == nil {
		return r
	}
	return &GormStockRepository{db: tx}
}

// Transaction 执行事务
func (r *GormStockRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// ListItems 库存项列表
func (r *GormStockRepository) ListItems(onlyLow bool) ([]models.StockItem, error) {
	var items []models.StockItem
	query := r.db.Preload("Product")
	if onlyLow {
		query = query.Where("quantity <= reorder_level")
	}
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemByID 根据 ID 获取库存项
func (r *GormStockRepository) GetItemByID(id uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.Preload("Product").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByProductID 根据商品 ID 获取库存项
func (r *GormStockRepository) GetItemByProductID(productID uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.Where("product_id = ?", productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemForUpdate 根据 ID 获取库存项并加行锁
func (r *GormStockRepository) GetItemForUpdate(id uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetItemByProductIDForUpdate 根据商品 ID 获取库存项并加行锁
func (r *GormStockRepository) GetItemByProductIDForUpdate(productID uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建库存项
func (r *GormStockRepository) CreateItem(item *models.StockItem) error {
	return r.db.Create(item).Error
}

// UpdateItem 更新库存项
func (r *GormStockRepository) UpdateItem(item *models.StockItem) error {
	return r.db.Save(item).Error
}

// CreateMovement 追加库存流水
func (r *GormStockRepository) CreateMovement(movement *models.StockMovement) error {
	return r.db.Create(movement).Error
}

// ListMovements 库存流水列表
func (r *GormStockRepository) ListMovements(filter StockMovementListFilter) ([]models.StockMovement, int64, error) {
	var movements []models.StockMovement

	query := r.db.Model(&models.StockMovement{})
	if filter.StockItemID != 0 {
		query = query.Where("stock_item_id = ?", filter.StockItemID)
	}
	if filter.MovementType != "" {
		query = query.Where("movement_type = ?", filter.MovementType)
	}
	if reference := strings.TrimSpace(filter.Reference); reference != "" {
		query = query.Where("reference = ?", reference)
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
	if err := query.Order("created_at DESC, id DESC").Find(&movements).Error; err != nil {
		return nil, 0, err
	}

	return movements, total, nil
}

// GetActiveAlert 获取库存项当前的活跃告警（不存在返回 nil）
func (r *GormStockRepository) GetActiveAlert(stockItemID uint) (*models.StockAlert, error) {
	var alert models.StockAlert
	if err := r.db.Where("stock_item_id = ? AND status IN ?", stockItemID,
		[]string{constants.AlertStatusActive, constants.AlertStatusAcknowledged}).
		Order("created_at DESC").
		First(&alert).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

// GetAlertByID 根据 ID 获取告警
func (r *GormStockRepository) GetAlertByID(id uint) (*models.StockAlert, error) {
	var alert models.StockAlert
	if err := r.db.Preload("StockItem").Preload("StockItem.Product").First(&alert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

// CreateAlert 创建告警
func (r *GormStockRepository) CreateAlert(alert *models.StockAlert) error {
	return r.db.Create(alert).Error
}

// UpdateAlert 更新告警
func (r *GormStockRepository) UpdateAlert(alert *models.StockAlert) error {
	return r.db.Save(alert).Error
}

// ListAlerts 告警列表
func (r *GormStockRepository) ListAlerts(filter StockAlertListFilter) ([]models.StockAlert, int64, error) {
	var alerts []models.StockAlert

	query := r.db.Model(&models.StockAlert{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("StockItem").Preload("StockItem.Product").
		Order("created_at DESC, id DESC").
		Find(&alerts).Error; err != nil {
		return nil, 0, err
	}

	return alerts, total, nil
}
