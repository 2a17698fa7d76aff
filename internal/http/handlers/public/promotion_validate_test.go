package public

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"

	"github.com/gin-gonic/gin"
)

func postJSON(c *gin.Context, path, payload string) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
}

func TestValidatePromotionUnknownCodeIsNotAnError(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/api/v1/public/promotions/validate", `{"code":"NOPE","subtotal":20,"delivery_fee":5}`)

	h.ValidatePromotion(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected http 200, got %d", w.Code)
	}
	statusCode, _, data := decodeEnvelope(t, w)
	if statusCode != 0 {
		t.Fatalf("unknown code should still succeed, got status %d", statusCode)
	}
	if data["valid"] != false || data["reason"] != "not_found" {
		t.Fatalf("unexpected validation payload: %+v", data)
	}
}

func TestValidatePromotionReturnsProjectionOnly(t *testing.T) {
	h, db := newTestHandler(t)
	if err := db.Create(&models.Promotion{
		Code:               "TENOFF",
		DiscountType:       constants.DiscountTypePercentage,
		DiscountValue:      models.NewMoneyFromString("10"),
		IsActive:           true,
		ApplyToEntireOrder: true,
		UsageLimit:         100,
		TimesUsed:          7,
	}).Error; err != nil {
		t.Fatalf("seed promotion failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/api/v1/public/promotions/validate", `{"code":"tenoff","subtotal":40,"delivery_fee":5}`)

	h.ValidatePromotion(c)

	statusCode, _, data := decodeEnvelope(t, w)
	if statusCode != 0 {
		t.Fatalf("validate failed with status %d", statusCode)
	}
	if data["valid"] != true || data["code"] != "TENOFF" || data["discount_type"] != "percentage" {
		t.Fatalf("unexpected validation payload: %+v", data)
	}
	// 使用次数等内部字段不对外暴露
	if _, leaked := data["times_used"]; leaked {
		t.Fatalf("usage counters must not leak to the public payload")
	}
	if _, leaked := data["usage_limit"]; leaked {
		t.Fatalf("usage limits must not leak to the public payload")
	}
}

func TestValidatePromotionRequiresCode(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	postJSON(c, "/api/v1/public/promotions/validate", `{"subtotal":20}`)

	h.ValidatePromotion(c)

	statusCode, _, _ := decodeEnvelope(t, w)
	if statusCode != 400 {
		t.Fatalf("missing code should map to 400, got %d", statusCode)
	}
}
