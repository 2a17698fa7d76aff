package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Staff 员工表
type Staff struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                              // 主键
	Username           string         `gorm:"uniqueIndex;type:varchar(50);not null" json:"username"` // 登录名
	PasswordHash       string         `gorm:"not null" json:"-"`                                 // 密码（bcrypt）
	DisplayName        string         `json:"display_name"`                                      // 显示名
	Email              string         `gorm:"type:varchar(100)" json:"email"`                    // 邮箱
	Role               string         `gorm:"type:varchar(20);not null" json:"role"`             // 角色（admin/staff）
	IsActive           bool           `json:"is_active"`                                         // 是否启用（列默认会吞掉 false，默认值由创建方写入）
	CanManageOrders    bool           `json:"can_manage_orders"`                                 // 可管理订单
	CanManageInventory bool           `gorm:"default:false" json:"can_manage_inventory"`         // 可管理库存
	CanManagePromos    bool           `gorm:"default:false" json:"can_manage_promotions"`        // 可管理优惠码
	CanManageSettings  bool           `gorm:"default:false" json:"can_manage_settings"`          // 可管理门店配置
	LastLoginAt        *time.Time     `json:"last_login_at,omitempty"`                           // 最近登录时间
	CreatedAt          time.Time      `json:"created_at"`                                        // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (Staff) TableName() string {
	return "staff"
}

// SetPassword 设置密码（bcrypt 加密）
func (s *Staff) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (s *Staff) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(plain)) == nil
}
