package admin

import (
	"strconv"

	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListStock 库存列表 (Admin)
func (h *Handler) ListStock(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	items, err := h.InventoryService.ListStock(actor, c.Query("low") == "true")
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to load stock")
		return
	}
	response.Success(c, items)
}

// StockAdjustRequest 手工调整库存请求
type StockAdjustRequest struct {
	ProductID    uint   `json:"product_id" binding:"required"`
	Delta        int    `json:"delta" binding:"required"`
	MovementType string `json:"movement_type" binding:"required"`
	Reference    string `json:"reference"`
	Notes        string `json:"notes"`
}

// AdjustStock 手工调整库存 (Admin)
func (h *Handler) AdjustStock(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	movement, err := h.InventoryService.Adjust(actor, req.ProductID, req.Delta, req.MovementType, req.Reference, req.Notes)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to adjust stock")
		return
	}
	response.Success(c, movement)
}

// StockQuantityRequest 入库/退货请求
type StockQuantityRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

// ReceiveStock 收货入库 (Admin)
func (h *Handler) ReceiveStock(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req StockQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	movement, err := h.InventoryService.Receive(actor, req.ProductID, req.Quantity, req.Reference, req.Notes)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to receive stock")
		return
	}
	response.Success(c, movement)
}

// ReturnStock 退货回补库存 (Admin)
func (h *Handler) ReturnStock(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req StockQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	movement, err := h.InventoryService.ReturnStock(actor, req.ProductID, req.Quantity, req.Reference, req.Notes)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to return stock")
		return
	}
	response.Success(c, movement)
}

// ListStockMovements 库存流水列表 (Admin)
func (h *Handler) ListStockMovements(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	stockItemID, _ := strconv.ParseUint(c.Query("stock_item_id"), 10, 64)

	movements, total, err := h.InventoryService.ListMovements(actor, repository.StockMovementListFilter{
		Page:         page,
		PageSize:     pageSize,
		StockItemID:  uint(stockItemID),
		MovementType: c.Query("movement_type"),
		Reference:    c.Query("reference"),
		CreatedFrom:  parseDateQuery(c, "created_from"),
		CreatedTo:    parseDateQuery(c, "created_to"),
	})
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to load stock movements")
		return
	}

	response.SuccessWithPage(c, movements, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// ListStockAlerts 库存告警列表 (Admin)
func (h *Handler) ListStockAlerts(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	alerts, total, err := h.InventoryService.ListAlerts(actor, repository.StockAlertListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to load stock alerts")
		return
	}

	response.SuccessWithPage(c, alerts, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// AcknowledgeStockAlert 确认库存告警 (Admin)
func (h *Handler) AcknowledgeStockAlert(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid alert id", err)
		return
	}

	alert, err := h.InventoryService.AcknowledgeAlert(actor, uint(id))
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to acknowledge alert")
		return
	}
	response.Success(c, alert)
}
