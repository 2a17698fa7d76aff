package admin

import (
	"strconv"
	"time"

	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/repository"

	"github.com/gin-gonic/gin"
)

func parseDateQuery(c *gin.Context, key string) *time.Time {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}

// ListOrders 订单列表 (Admin)
func (h *Handler) ListOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		OrderType:     c.Query("order_type"),
		OrderNo:       c.Query("order_no"),
		CustomerEmail: c.Query("email"),
		Search:        c.Query("search"),
		CreatedFrom:   parseDateQuery(c, "created_from"),
		CreatedTo:     parseDateQuery(c, "created_to"),
	}

	orders, total, err := h.OrderService.List(actor, filter)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to load orders")
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetOrder 订单详情 (Admin)
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	order, err := h.OrderService.GetByID(actor, uint(id))
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to load order")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 更新订单状态 (Admin)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(actor, uint(id), req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to update order status")
		return
	}
	response.Success(c, order)
}

// GetOrderStats 订单看板统计 (Admin)
func (h *Handler) GetOrderStats(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	stats, err := h.OrderService.Stats(actor)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to load order stats")
		return
	}
	response.Success(c, stats)
}
