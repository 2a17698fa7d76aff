package admin

import (
	"strconv"

	"github.com/pizzeria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LookupBarcode 扫码查商品 (Admin)
func (h *Handler) LookupBarcode(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	product, err := h.BarcodeService.LookupByCode(actor, c.Param("code"))
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to look up barcode")
		return
	}
	response.Success(c, product)
}

// BarcodeAssignRequest 条码/SKU 写入请求（留空则生成）
type BarcodeAssignRequest struct {
	Barcode string `json:"barcode"`
	SKU     string `json:"sku"`
}

// AssignProductBarcode 为商品分配条码 (Admin)
func (h *Handler) AssignProductBarcode(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid product id", err)
		return
	}

	var req BarcodeAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.BarcodeService.AssignBarcode(actor, uint(id), req.Barcode)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to assign barcode")
		return
	}
	response.Success(c, product)
}

// AssignProductSKU 为商品分配 SKU (Admin)
func (h *Handler) AssignProductSKU(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid product id", err)
		return
	}

	var req BarcodeAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	product, err := h.BarcodeService.AssignSKU(actor, uint(id), req.SKU)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to assign sku")
		return
	}
	response.Success(c, product)
}

// BackfillBarcodes 批量补齐缺失的条码与 SKU (Admin)
func (h *Handler) BackfillBarcodes(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	result, err := h.BarcodeService.Backfill(actor)
	if err != nil {
		respondWithMappedError(c, err, inventoryErrorRules, response.CodeInternal, "failed to backfill barcodes")
		return
	}
	response.Success(c, result)
}
