package repository

import (
	"errors"

	"github.com/pizzeria-next/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository 菜单基础数据访问接口（分类、规格、配料等）
type CatalogRepository interface {
	ListCategories() ([]models.Category, error)
	GetCategoryByID(id uint) (*models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)
	ListSizesByCategory(categoryID uint) ([]models.Size, error)
	GetSizeByID(id uint) (*models.Size, error)
	ListToppings() ([]models.Topping, error)
	ListToppingsByIDs(ids []uint) ([]models.Topping, error)
	GetToppingByID(id uint) (*models.Topping, error)
	ListTags() ([]models.Tag, error)
	WithTx(tx *gorm.DB) CatalogRepository
}

// GormCatalogRepository GORM 实现
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建菜单基础数据仓库
func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCatalogRepository) WithTx(tx *gorm.DB) CatalogRepository {
	if tx == nil {
		return r
	}
	return &GormCatalogRepository{db: tx}
}

// ListCategories 分类列表（按展示顺序）
func (r *GormCatalogRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("display_order ASC, id ASC")
	}).Order("display_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID 根据 ID 获取分类
func (r *GormCatalogRepository) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// GetCategoryBySlug 根据 slug 获取分类
func (r *GormCatalogRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListSizesByCategory 分类下的规格列表
func (r *GormCatalogRepository) ListSizesByCategory(categoryID uint) ([]models.Size, error) {
	var sizes []models.Size
	if err := r.db.Where("category_id = ?", categoryID).
		Order("display_order ASC, id ASC").
		Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// GetSizeByID 根据 ID 获取规格
func (r *GormCatalogRepository) GetSizeByID(id uint) (*models.Size, error) {
	var size models.Size
	if err := r.db.First(&size, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &size, nil
}

// ListToppings 配料列表
func (r *GormCatalogRepository) ListToppings() ([]models.Topping, error) {
	var toppings []models.Topping
	if err := r.db.Order("name ASC").Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

// ListToppingsByIDs 批量获取配料
func (r *GormCatalogRepository) ListToppingsByIDs(ids []uint) ([]models.Topping, error) {
	if len(ids) == 0 {
		return []models.Topping{}, nil
	}
	var toppings []models.Topping
	if err := r.db.Where("id IN ?", ids).Find(&toppings).Error; err != nil {
		return nil, err
	}
	return toppings, nil
}

// GetToppingByID 根据 ID 获取配料
func (r *GormCatalogRepository) GetToppingByID(id uint) (*models.Topping, error) {
	var topping models.Topping
	if err := r.db.First(&topping, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topping, nil
}

// ListTags 标签列表
func (r *GormCatalogRepository) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
