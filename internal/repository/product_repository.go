package repository

import (
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint, withRelations bool) (*models.Product, error)
	GetBySlug(slug string, onlyAvailable bool) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	ListFeatured(limit int) ([]models.Product, error)
	GetByBarcodeOrSKU(code string, onlyAvailable bool) (*models.Product, error)
	ExistsBarcode(barcode string, excludeID uint) (bool, error)
	ExistsSKU(sku string, excludeID uint) (bool, error)
	ListMissingCodes() ([]models.Product, error)
	SetBarcode(id uint, barcode string) error
	SetSKU(id uint, sku string) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormProductRepository) preloadRelations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Category").
		Preload("Tags").
		Preload("Ingredients").
		Preload("IncludedItems").
		Preload("AvailableSizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Preload("AvailableToppings", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		})
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.OnlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	if filter.OnlyFeatured {
		query = query.Where("is_featured = ?", true)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM product_tags pt JOIN tags t ON t.id = pt.tag_id WHERE pt.product_id = products.id AND t.slug = ?)",
			tag,
		)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.WithRelations {
		query = r.preloadRelations(query)
	} else {
		query = query.Preload("Category")
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("category_id ASC, name ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint, withRelations bool) (*models.Product, error) {
	query := r.db.Model(&models.Product{})
	if withRelations {
		query = r.preloadRelations(query)
	}
	var product models.Product
	if err := query.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string, onlyAvailable bool) (*models.Product, error) {
	query := r.preloadRelations(r.db.Model(&models.Product{})).Where("slug = ?", slug)
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetByBarcodeOrSKU 根据条码或 SKU 精确查找商品
func (r *GormProductRepository) GetByBarcodeOrSKU(code string, onlyAvailable bool) (*models.Product, error) {
	query := r.db.Model(&models.Product{}).
		Preload("Category").
		Where("barcode = ? OR sku = ?", code, code)
	if onlyAvailable {
		query = query.Where("is_available = ?", true)
	}
	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ExistsBarcode 判断条码是否被其他商品占用
func (r *GormProductRepository) ExistsBarcode(barcode string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("barcode = ?", barcode)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsSKU 判断 SKU 是否被其他商品占用
func (r *GormProductRepository) ExistsSKU(sku string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListMissingCodes 缺少条码或 SKU 的商品列表（补码用）
func (r *GormProductRepository) ListMissingCodes() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Model(&models.Product{}).
		Preload("Category").
		Where("barcode IS NULL OR sku IS NULL").
		Order("id ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SetBarcode 写入商品条码
func (r *GormProductRepository) SetBarcode(id uint, barcode string) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("barcode", barcode).Error
}

// SetSKU 写入商品 SKU
func (r *GormProductRepository) SetSKU(id uint, sku string) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("sku", sku).Error
}

// ListFeatured 推荐商品列表
func (r *GormProductRepository) ListFeatured(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	var products []models.Product
	if err := r.preloadRelations(r.db.Model(&models.Product{})).
		Where("is_available = ? AND is_featured = ?", true, true).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
