package repository

import (
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PromotionRepository 优惠码数据访问接口
type PromotionRepository interface {
	List(filter PromotionListFilter) ([]models.Promotion, int64, error)
	GetByID(id uint) (*models.Promotion, error)
	GetByCode(code string) (*models.Promotion, error)
	GetByCodeForUpdate(code string) (*models.Promotion, error)
	Create(promotion *models.Promotion) error
	Update(promotion *models.Promotion) error
	Delete(id uint) error
	IncrementUsage(id uint) error
	ReplaceApplicableProducts(promotion *models.Promotion, products []models.Product) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) PromotionRepository
}

// GormPromotionRepository GORM 实现
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewPromotionRepository 创建优惠码仓库
func NewPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPromotionRepository) WithTx(tx *gorm.DB) PromotionRepository {
	if tx == nil {
		return r
	}
	return &GormPromotionRepository{db: tx}
}

// Transaction 执行事务
func (r *GormPromotionRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 优惠码列表
func (r *GormPromotionRepository) List(filter PromotionListFilter) ([]models.Promotion, int64, error) {
	var promotions []models.Promotion

	query := r.db.Model(&models.Promotion{})
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToUpper(search) + "%"
		query = query.Where("code LIKE ? OR description LIKE ?", like, "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("ApplicableProducts").Order("created_at DESC, id DESC").Find(&promotions).Error; err != nil {
		return nil, 0, err
	}

	return promotions, total, nil
}

// GetByID 根据 ID 获取优惠码
func (r *GormPromotionRepository) GetByID(id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Preload("ApplicableProducts").First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCode 根据优惠码获取（不区分大小写）
func (r *GormPromotionRepository) GetByCode(code string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Preload("ApplicableProducts").
		Where("code = ?", models.NormalizeCode(code)).
		First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// GetByCodeForUpdate 根据优惠码获取并加行锁（结算事务内防止超用）
func (r *GormPromotionRepository) GetByCodeForUpdate(code string) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("ApplicableProducts").
		Where("code = ?", models.NormalizeCode(code)).
		First(&promotion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &promotion, nil
}

// Create 创建优惠码
func (r *GormPromotionRepository) Create(promotion *models.Promotion) error {
	return r.db.Create(promotion).Error
}

// Update 更新优惠码
func (r *GormPromotionRepository) Update(promotion *models.Promotion) error {
	return r.db.Omit("ApplicableProducts").Save(promotion).Error
}

// Delete 删除优惠码
func (r *GormPromotionRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promotion{}, id).Error
}

// IncrementUsage 累加使用次数
func (r *GormPromotionRepository) IncrementUsage(id uint) error {
	return r.db.Model(&models.Promotion{}).
		Where("id = ?", id).
		UpdateColumn("times_used", gorm.Expr("times_used + 1")).Error
}

// ReplaceApplicableProducts 替换适用商品集合
func (r *GormPromotionRepository) ReplaceApplicableProducts(promotion *models.Promotion, products []models.Product) error {
	return r.db.Model(promotion).Association("ApplicableProducts").Replace(products)
}
