package public

import (
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	CustomerName         string        `json:"customer_name" binding:"required"`
	CustomerEmail        string        `json:"customer_email" binding:"required,email"`
	CustomerPhone        string        `json:"customer_phone" binding:"required"`
	OrderType            string        `json:"order_type" binding:"required"`
	DeliveryAddress      string        `json:"delivery_address"`
	DeliveryInstructions string        `json:"delivery_instructions"`
	OrderNotes           string        `json:"order_notes"`
	DeliveryFee          *models.Money `json:"delivery_fee"`
	PromotionCode        string        `json:"promotion_code"`
}

// Checkout 结账下单
func (h *Handler) Checkout(c *gin.Context) {
	sessionKey, ok := requireSessionKey(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		SessionKey:           sessionKey,
		CustomerName:         req.CustomerName,
		CustomerEmail:        req.CustomerEmail,
		CustomerPhone:        req.CustomerPhone,
		OrderType:            req.OrderType,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
		OrderNotes:           req.OrderNotes,
		DeliveryFee:          req.DeliveryFee,
		PromotionCode:        req.PromotionCode,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to place order")
		return
	}
	response.SuccessWithMsg(c, "order placed", order)
}

// LookupOrder 按订单号加邮箱查询订单
func (h *Handler) LookupOrder(c *gin.Context) {
	orderNo := c.Param("order_no")
	email := c.Query("email")
	if email == "" {
		respondError(c, response.CodeBadRequest, "email is required", nil)
		return
	}

	order, err := h.OrderService.Lookup(orderNo, email)
	if err != nil {
		respondWithMappedError(c, err, orderLookupErrorRules, response.CodeInternal, "failed to look up order")
		return
	}
	response.Success(c, order)
}
