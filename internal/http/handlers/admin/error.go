package admin

import (
	"errors"

	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	if errors.Is(err, service.ErrPermissionDenied) {
		respondError(c, response.CodeForbidden, "permission denied", nil)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, msg: "invalid order status transition"},
	{target: service.ErrOrderStatusTerminal, code: response.CodeBadRequest, msg: "order is in a terminal status"},
}

var promotionErrorRules = []mappedHandlerError{
	{target: service.ErrPromotionNotFound, code: response.CodeNotFound, msg: "promotion not found"},
	{target: service.ErrPromotionConflict, code: response.CodeConflict, msg: "promotion code already exists"},
	{target: service.ErrInvalidDiscount, code: response.CodeBadRequest, msg: "invalid discount definition"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
}

var inventoryErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrStockItemNotFound, code: response.CodeNotFound, msg: "stock item not found"},
	{target: service.ErrStockAlertNotFound, code: response.CodeNotFound, msg: "stock alert not found"},
	{target: service.ErrInvalidMovementType, code: response.CodeBadRequest, msg: "invalid movement type"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrBarcodeConflict, code: response.CodeConflict, msg: "barcode already assigned to another product"},
	{target: service.ErrSKUConflict, code: response.CodeConflict, msg: "sku already assigned to another product"},
}
