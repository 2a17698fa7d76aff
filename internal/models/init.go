package models

import (
	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/logger"
)

// InitDefaultStaff 初始化默认管理员员工账号
func InitDefaultStaff(username, password string) error {
	var count int64
	DB.Model(&Staff{}).Count(&count)

	// 已有员工则确保默认 admin 保留管理员角色
	if count > 0 {
		if err := DB.Model(&Staff{}).Where("username = ?", "admin").Update("role", constants.StaffRoleAdmin).Error; err != nil {
			logger.Warnw("ensure_default_staff_admin_failed", "error", err)
		}
		return nil
	}

	// 创建默认管理员
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}

	staff := Staff{
		Username:           username,
		DisplayName:        "Store Admin",
		Role:               constants.StaffRoleAdmin,
		IsActive:           true,
		CanManageOrders:    true,
		CanManageInventory: true,
		CanManagePromos:    true,
		CanManageSettings:  true,
	}
	if err := staff.SetPassword(password); err != nil {
		return err
	}

	if err := DB.Create(&staff).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_staff_created_with_default_password", "username", username)
		logger.Warnw("default_staff_password_change_required", "username", username)
	} else {
		logger.Warnw("default_staff_created", "username", username, "password_hidden", true)
	}

	return nil
}
