package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

func seedOrder(t *testing.T, h *Handler, status string) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderNo:       "ORD-20260831-AB42",
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		OrderType:     constants.OrderTypePickup,
		Status:        status,
		Subtotal:      models.NewMoneyFromString("20.00"),
		Total:         models.NewMoneyFromString("20.00"),
	}
	if err := h.OrderRepo.Create(order); err != nil {
		t.Fatalf("seed order failed: %v", err)
	}
	return order
}

func putStatus(c *gin.Context, orderID, status string) {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/orders/"+orderID+"/status", strings.NewReader(`{"status":"`+status+`"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: orderID}}
}

func TestUpdateOrderStatusRequiresCapability(t *testing.T) {
	h, _ := newTestHandler(t)
	order := seedOrder(t, h, constants.OrderStatusPending)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("staff_actor", service.Actor{ID: 2, Name: "viewer"})
	putStatus(c, "1", constants.OrderStatusConfirmed)

	h.UpdateOrderStatus(c)

	statusCode, msg, _ := decodeEnvelope(t, w)
	if statusCode != 403 || msg != "permission denied" {
		t.Fatalf("want 403 permission denied, got %d %q", statusCode, msg)
	}

	unchanged, err := h.OrderRepo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if unchanged.Status != constants.OrderStatusPending {
		t.Fatalf("denied update must not change the order, got %s", unchanged.Status)
	}
}

func TestUpdateOrderStatusTransitions(t *testing.T) {
	h, _ := newTestHandler(t)
	seedOrder(t, h, constants.OrderStatusPending)
	actor := service.Actor{ID: 1, Name: "manager", Role: constants.StaffRoleAdmin, CanManageOrders: true}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("staff_actor", actor)
	putStatus(c, "1", constants.OrderStatusCancelled)

	h.UpdateOrderStatus(c)
	if statusCode, _, _ := decodeEnvelope(t, w); statusCode != 0 {
		t.Fatalf("cancel pending order should succeed, got %d", statusCode)
	}

	// 终态订单拒绝再次流转
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Set("staff_actor", actor)
	putStatus(c, "1", constants.OrderStatusConfirmed)

	h.UpdateOrderStatus(c)
	statusCode, msg, _ := decodeEnvelope(t, w)
	if statusCode != 400 || msg != "order is in a terminal status" {
		t.Fatalf("terminal order want 400, got %d %q", statusCode, msg)
	}
}

func TestUpdateOrderStatusUnknownOrder(t *testing.T) {
	h, _ := newTestHandler(t)
	actor := service.Actor{ID: 1, Name: "manager", CanManageOrders: true}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("staff_actor", actor)
	putStatus(c, "42", constants.OrderStatusConfirmed)

	h.UpdateOrderStatus(c)
	if statusCode, _, _ := decodeEnvelope(t, w); statusCode != 404 {
		t.Fatalf("unknown order want 404, got %d", statusCode)
	}
}
