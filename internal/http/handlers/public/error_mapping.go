package public

import (
	"errors"

	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

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
	var rejected *service.PromotionRejectedError
	if errors.As(err, &rejected) {
		respondError(c, response.CodeBadRequest, rejected.Message, nil)
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

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrProductUnavailable, code: response.CodeBadRequest, msg: "product is not available"},
	{target: service.ErrSizeNotFound, code: response.CodeNotFound, msg: "size not found"},
	{target: service.ErrToppingNotFound, code: response.CodeNotFound, msg: "topping not found"},
	{target: service.ErrInvalidSizeForProduct, code: response.CodeBadRequest, msg: "size not allowed for this product"},
	{target: service.ErrInvalidToppingForProduct, code: response.CodeBadRequest, msg: "topping not allowed for this product"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, msg: "quantity must be positive"},
	{target: service.ErrCartLineNotFound, code: response.CodeNotFound, msg: "cart line not found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrEmptyCart, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrInvalidOrderType, code: response.CodeBadRequest, msg: "order type must be delivery or pickup"},
	{target: service.ErrMissingDeliveryAddress, code: response.CodeBadRequest, msg: "delivery address is required"},
	{target: service.ErrBelowMinimumOrder, code: response.CodeBadRequest, msg: "order is below the minimum amount"},
	{target: service.ErrOrderingClosed, code: response.CodeBadRequest, msg: "store is not accepting orders right now"},
	{target: service.ErrPromotionInvalid, code: response.CodeBadRequest, msg: "promotion code is not valid"},
}

var orderLookupErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
}
