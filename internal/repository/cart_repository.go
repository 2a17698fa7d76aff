package repository

import (
	"errors"

	"github.com/pizzeria-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetBySessionKey(sessionKey string) (*models.Cart, error)
	GetOrCreateBySessionKey(sessionKey string) (*models.Cart, error)
	GetLineByID(cartID, lineID uint) (*models.CartLine, error)
	CreateLine(line *models.CartLine) error
	UpdateLine(line *models.CartLine) error
	DeleteLine(cartID, lineID uint) error
	DeleteLinesByID(cartID uint, lineIDs []uint) error
	ClearLines(cartID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormCartRepository) preloadLines(query *gorm.DB) *gorm.DB {
	return query.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Lines.Product").Preload("Lines.Size")
}

// GetBySessionKey 根据会话键获取购物车（不存在返回 nil）
func (r *GormCartRepository) GetBySessionKey(sessionKey string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.preloadLines(r.db).Where("session_key = ?", sessionKey).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetOrCreateBySessionKey 根据会话键获取购物车，不存在则创建
func (r *GormCartRepository) GetOrCreateBySessionKey(sessionKey string) (*models.Cart, error) {
	cart, err := r.GetBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{SessionKey: sessionKey}
	if err := r.db.Create(cart).Error; err != nil {
		// 并发创建时命中唯一索引，重查一次
		existing, qerr := r.GetBySessionKey(sessionKey)
		if qerr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return cart, nil
}

// GetLineByID 获取购物车行（限定所属购物车）
func (r *GormCartRepository) GetLineByID(cartID, lineID uint) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.db.Preload("Product").Preload("Size").
		Where("cart_id = ?", cartID).
		First(&line, lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// CreateLine 创建购物车行
func (r *GormCartRepository) CreateLine(line *models.CartLine) error {
	return r.db.Create(line).Error
}

// UpdateLine 更新购物车行
func (r *GormCartRepository) UpdateLine(line *models.CartLine) error {
	return r.db.Save(line).Error
}

// DeleteLine 删除购物车行
func (r *GormCartRepository) DeleteLine(cartID, lineID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartLine{}, lineID).Error
}

// DeleteLinesByID 删除指定的购物车行，购物车中未列出的行保持不动
func (r *GormCartRepository) DeleteLinesByID(cartID uint, lineIDs []uint) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return r.db.Where("cart_id = ? AND id IN ?", cartID, lineIDs).Delete(&models.CartLine{}).Error
}

// ClearLines 清空购物车行
func (r *GormCartRepository) ClearLines(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartLine{}).Error
}
