package admin

import (
	"strconv"
	"time"

	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PromotionRequest 优惠码创建/更新请求
type PromotionRequest struct {
	Code                 string        `json:"code" binding:"required"`
	Description          string        `json:"description"`
	DiscountType         string        `json:"discount_type" binding:"required"`
	DiscountValue        models.Money  `json:"discount_value"`
	MinimumOrderAmount   *models.Money `json:"minimum_order_amount"`
	MaximumDiscount      *models.Money `json:"maximum_discount"`
	UsageLimit           int           `json:"usage_limit"`
	ValidFrom            *time.Time    `json:"valid_from"`
	ValidUntil           *time.Time    `json:"valid_until"`
	IsActive             bool          `json:"is_active"`
	ApplyToBasePrice     bool          `json:"apply_to_base_price"`
	ApplyToToppings      bool          `json:"apply_to_toppings"`
	ApplyToIncluded      bool          `json:"apply_to_included_items"`
	ApplyToEntireOrder   bool          `json:"apply_to_entire_order"`
	ApplicableProductIDs []uint        `json:"applicable_product_ids"`
}

func (r PromotionRequest) toInput() service.PromotionInput {
	return service.PromotionInput{
		Code:                 r.Code,
		Description:          r.Description,
		DiscountType:         r.DiscountType,
		DiscountValue:        r.DiscountValue,
		MinimumOrderAmount:   r.MinimumOrderAmount,
		MaximumDiscount:      r.MaximumDiscount,
		UsageLimit:           r.UsageLimit,
		ValidFrom:            r.ValidFrom,
		ValidUntil:           r.ValidUntil,
		IsActive:             r.IsActive,
		ApplyToBasePrice:     r.ApplyToBasePrice,
		ApplyToToppings:      r.ApplyToToppings,
		ApplyToIncluded:      r.ApplyToIncluded,
		ApplyToEntireOrder:   r.ApplyToEntireOrder,
		ApplicableProductIDs: r.ApplicableProductIDs,
	}
}

// ListPromotions 优惠码列表 (Admin)
func (h *Handler) ListPromotions(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	promotions, total, err := h.PromotionAdminService.List(actor, repository.PromotionListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		OnlyActive: c.Query("active") == "true",
	})
	if err != nil {
		respondWithMappedError(c, err, promotionErrorRules, response.CodeInternal, "failed to load promotions")
		return
	}

	response.SuccessWithPage(c, promotions, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetPromotion 优惠码详情 (Admin)
func (h *Handler) GetPromotion(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid promotion id", err)
		return
	}

	promotion, err := h.PromotionAdminService.Get(actor, uint(id))
	if err != nil {
		respondWithMappedError(c, err, promotionErrorRules, response.CodeInternal, "failed to load promotion")
		return
	}
	response.Success(c, promotion)
}

// CreatePromotion 新建优惠码 (Admin)
func (h *Handler) CreatePromotion(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	promotion, err := h.PromotionAdminService.Create(actor, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, promotionErrorRules, response.CodeInternal, "failed to create promotion")
		return
	}
	response.Success(c, promotion)
}

// UpdatePromotion 更新优惠码 (Admin)
func (h *Handler) UpdatePromotion(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid promotion id", err)
		return
	}

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	promotion, err := h.PromotionAdminService.Update(actor, uint(id), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, promotionErrorRules, response.CodeInternal, "failed to update promotion")
		return
	}
	response.Success(c, promotion)
}

// DeletePromotion 删除优惠码 (Admin)
func (h *Handler) DeletePromotion(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid promotion id", err)
		return
	}

	if err := h.PromotionAdminService.Delete(actor, uint(id)); err != nil {
		respondWithMappedError(c, err, promotionErrorRules, response.CodeInternal, "failed to delete promotion")
		return
	}
	response.Success(c, nil)
}
