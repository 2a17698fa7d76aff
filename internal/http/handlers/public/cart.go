package public

import (
	"strconv"

	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartLineRequest 加入购物车请求
type AddCartLineRequest struct {
	ProductID         uint   `json:"product_id" binding:"required"`
	SizeID            *uint  `json:"size_id"`
	ToppingIDs        []uint `json:"topping_ids"`
	Quantity          int    `json:"quantity" binding:"required"`
	IncludeComboItems bool   `json:"include_combo_items"`
}

// UpdateCartLineRequest 更新购物车行请求，省略的字段保持原值
type UpdateCartLineRequest struct {
	Quantity          *int    `json:"quantity"`
	SizeID            *uint   `json:"size_id"`
	ClearSize         bool    `json:"clear_size"`
	ToppingIDs        *[]uint `json:"topping_ids"`
	IncludeComboItems *bool   `json:"include_combo_items"`
}

// GetCart 查看购物车
func (h *Handler) GetCart(c *gin.Context) {
	sessionKey, ok := requireSessionKey(c)
	if !ok {
		return
	}

	detail, err := h.CartService.Get(sessionKey)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load cart", err)
		return
	}
	response.Success(c, detail)
}

// AddCartLine 加入购物车
func (h *Handler) AddCartLine(c *gin.Context) {
	sessionKey, ok := requireSessionKey(c)
	if !ok {
		return
	}

	var req AddCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	detail, err := h.CartService.AddLine(sessionKey, service.AddLineInput{
		ProductID:         req.ProductID,
		SizeID:            req.SizeID,
		ToppingIDs:        req.ToppingIDs,
		Quantity:          req.Quantity,
		IncludeComboItems: req.IncludeComboItems,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to add to cart")
		return
	}
	response.Success(c, detail)
}

// UpdateCartLine 更新购物车行
func (h *Handler) UpdateCartLine(c *gin.Context) {
	sessionKey, ok := requireSessionKey(c)
	if !ok {
		return
	}

	lineID, err := strconv.ParseUint(c.Param("line_id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart line id", err)
		return
	}

	var req UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	detail, err := h.CartService.UpdateLine(sessionKey, uint(lineID), service.UpdateLineInput{
		Quantity:          req.Quantity,
		SizeID:            req.SizeID,
		ClearSize:         req.ClearSize,
		ToppingIDs:        req.ToppingIDs,
		IncludeComboItems: req.IncludeComboItems,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}
	response.Success(c, detail)
}

// RemoveCartLine 删除购物车行
func (h *Handler) RemoveCartLine(c *gin.Context) {
	sessionKey, ok := requireSessionKey(c)
	if !ok {
		return
	}

	lineID, err := strconv.ParseUint(c.Param("line_id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart line id", err)
		return
	}

	detail, err := h.CartService.RemoveLine(sessionKey, uint(lineID))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}
	response.Success(c, detail)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sessionKey, ok := requireSessionKey(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(sessionKey); err != nil {
		respondError(c, response.CodeInternal, "failed to clear cart", err)
		return
	}
	response.Success(c, nil)
}
