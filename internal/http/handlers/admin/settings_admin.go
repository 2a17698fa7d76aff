package admin

import (
	"github.com/pizzeria-next/internal/cache"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetSettings 门店配置详情 (Admin)
func (h *Handler) GetSettings(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	if !actor.CanManageSettings {
		respondError(c, response.CodeForbidden, "permission denied", nil)
		return
	}

	config, err := h.StoreSettingsService.Load()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load settings", err)
		return
	}
	response.Success(c, config)
}

// UpdateSettings 保存门店配置 (Admin)
func (h *Handler) UpdateSettings(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var config service.StoreConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	if err := h.StoreSettingsService.Save(actor, config); err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "failed to save settings")
		return
	}

	// 公共配置走 Redis 缓存，保存后主动失效
	if err := cache.Del(c.Request.Context(), cache.KeyPublicStoreConfig); err != nil {
		requestLog(c).Warnw("public_config_cache_invalidate_failed", "error", err)
	}

	response.Success(c, config)
}
