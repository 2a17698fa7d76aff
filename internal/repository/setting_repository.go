package repository

import (
	"errors"

	"github.com/pizzeria-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository 配置数据访问接口
type SettingRepository interface {
	Get(key string) (*models.Setting, error)
	Set(key, value string) error
	WithTx(tx *gorm.DB) SettingRepository
}

// GormSettingRepository GORM 实现
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository 创建配置仓库
func NewSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSettingRepository) WithTx(tx *gorm.DB) SettingRepository {
	if tx == nil {
		return r
	}
	return &GormSettingRepository{db: tx}
}

// Get 读取配置项（不存在返回 nil）
func (r *GormSettingRepository) Get(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// Set 写入配置项（存在则更新）
func (r *GormSettingRepository) Set(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
