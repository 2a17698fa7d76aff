package models

import (
	"time"
)

// Setting 配置表（键值存储，值为 JSON 文本）
type Setting struct {
	ID        uint      `gorm:"primarykey" json:"id"`                             // 主键
	Key       string    `gorm:"uniqueIndex;type:varchar(64);not null" json:"key"` // 配置键
	Value     string    `gorm:"type:text" json:"value"`                           // 配置值（JSON）
	CreatedAt time.Time `json:"created_at"`                                       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                       // 更新时间
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
