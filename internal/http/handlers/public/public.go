package public

import (
	"strconv"
	"time"

	"github.com/pizzeria-next/internal/cache"
	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) publicCacheTTL() time.Duration {
	seconds := h.Config.Store.PublicCacheTTLSecond
	if seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

// GetConfig 门店配置（Redis 缓存）
func (h *Handler) GetConfig(c *gin.Context) {
	var cached service.PublicStoreConfig
	if hit, err := cache.GetJSON(c.Request.Context(), cache.KeyPublicStoreConfig, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	config, err := h.StoreSettingsService.Public()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load store config", err)
		return
	}
	if err := cache.SetJSON(c.Request.Context(), cache.KeyPublicStoreConfig, config, h.publicCacheTTL()); err != nil {
		handlershared.RequestLog(c).Warnw("public_config_cache_set_failed", "error", err)
	}
	response.Success(c, config)
}

// ListCategories 分类列表（Redis 缓存）
func (h *Handler) ListCategories(c *gin.Context) {
	var cached []models.Category
	if hit, err := cache.GetJSON(c.Request.Context(), cache.KeyPublicCategories, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	categories, err := h.CatalogService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load categories", err)
		return
	}
	if err := cache.SetJSON(c.Request.Context(), cache.KeyPublicCategories, categories, h.publicCacheTTL()); err != nil {
		handlershared.RequestLog(c).Warnw("public_categories_cache_set_failed", "error", err)
	}
	response.Success(c, categories)
}

// ListToppings 配料列表（Redis 缓存）
func (h *Handler) ListToppings(c *gin.Context) {
	var cached []models.Topping
	if hit, err := cache.GetJSON(c.Request.Context(), cache.KeyPublicToppings, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	toppings, err := h.CatalogService.ListToppings()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load toppings", err)
		return
	}
	if err := cache.SetJSON(c.Request.Context(), cache.KeyPublicToppings, toppings, h.publicCacheTTL()); err != nil {
		handlershared.RequestLog(c).Warnw("public_toppings_cache_set_failed", "error", err)
	}
	response.Success(c, toppings)
}

// ListProducts 在售商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	filter := repository.ProductListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategoryID:    uint(categoryID),
		Search:        c.Query("search"),
		Tag:           c.Query("tag"),
		OnlyAvailable: true,
		OnlyFeatured:  c.Query("featured") == "true",
		WithRelations: true,
	}

	products, total, err := h.CatalogService.ListProducts(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, products, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetProductBySlug 商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.CatalogService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
		}, response.CodeInternal, "failed to load product")
		return
	}
	response.Success(c, product)
}

// ValidatePromotionRequest 优惠码预校验请求
type ValidatePromotionRequest struct {
	Code        string       `json:"code" binding:"required"`
	Subtotal    models.Money `json:"subtotal"`
	DeliveryFee models.Money `json:"delivery_fee"`
}

// ValidatePromotion 优惠码预校验：无效也返回 200，结果里带原因。
func (h *Handler) ValidatePromotion(c *gin.Context) {
	var req ValidatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.PromotionService.Validate(req.Code, req.Subtotal, req.DeliveryFee, time.Now())
	if err != nil {
		respondError(c, response.CodeInternal, "failed to validate promotion", err)
		return
	}
	// 不回传完整优惠码记录，只给前端展示所需字段
	payload := gin.H{
		"valid":           result.Valid,
		"reason":          result.Reason,
		"message":         result.Message,
		"discount_amount": result.DiscountAmount,
	}
	if result.Promotion != nil {
		payload["code"] = result.Promotion.Code
		payload["discount_type"] = result.Promotion.DiscountType
	}
	response.Success(c, payload)
}
