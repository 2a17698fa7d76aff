package service

import (
	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
)

// Actor 已认证的操作者，受限操作显式传入并逐项校验能力。
type Actor struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	CanManageOrders    bool   `json:"can_manage_orders"`
	CanManageInventory bool   `json:"can_manage_inventory"`
	CanManagePromos    bool   `json:"can_manage_promotions"`
	CanManageSettings  bool   `json:"can_manage_settings"`
}

// ActorFromStaff 从员工记录构造操作者
func ActorFromStaff(staff *models.Staff) Actor {
	if staff == nil {
		return Actor{}
	}
	name := staff.DisplayName
	if name == "" {
		name = staff.Username
	}
	actor := Actor{
		ID:                 staff.ID,
		Name:               name,
		Role:               staff.Role,
		CanManageOrders:    staff.CanManageOrders,
		CanManageInventory: staff.CanManageInventory,
		CanManagePromos:    staff.CanManagePromos,
		CanManageSettings:  staff.CanManageSettings,
	}
	// 管理员角色天然拥有全部能力
	if staff.Role == constants.StaffRoleAdmin {
		actor.CanManageOrders = true
		actor.CanManageInventory = true
		actor.CanManagePromos = true
		actor.CanManageSettings = true
	}
	return actor
}
