package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate orders failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func createOrder(t *testing.T, repo *GormOrderRepository, orderNo, status, total string) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderNo:       orderNo,
		CustomerName:  "Dana",
		CustomerEmail: "dana@example.com",
		OrderType:     constants.OrderTypePickup,
		Status:        status,
		Subtotal:      models.NewMoneyFromString(total),
		Total:         models.NewMoneyFromString(total),
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestGetByOrderNoNormalizesInput(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createOrder(t, repo, "ORD-20260831-AB42", constants.OrderStatusPending, "20.00")

	order, err := repo.GetByOrderNo("  ord-20260831-ab42 ")
	if err != nil {
		t.Fatalf("get by order no failed: %v", err)
	}
	if order == nil {
		t.Fatalf("lowercase lookup should find the order")
	}

	missing, err := repo.GetByOrderNo("ORD-20260831-XXXX")
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown order no should return nil")
	}
}

func TestExistsOrderNo(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createOrder(t, repo, "ORD-20260831-AB42", constants.OrderStatusPending, "20.00")

	exists, err := repo.ExistsOrderNo("ORD-20260831-AB42")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Fatalf("known order no should exist")
	}
	exists, err = repo.ExistsOrderNo("ORD-20260831-ZZZZ")
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if exists {
		t.Fatalf("unknown order no should not exist")
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createOrder(t, repo, "ORD-20260831-AAAA", constants.OrderStatusPending, "20.00")
	createOrder(t, repo, "ORD-20260831-BBBB", constants.OrderStatusPreparing, "30.00")
	createOrder(t, repo, "ORD-20260831-CCCC", constants.OrderStatusPending, "40.00")

	pending, total, err := repo.List(OrderListFilter{Status: constants.OrderStatusPending, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(pending) != 2 {
		t.Fatalf("want 2 pending orders, got total=%d len=%d", total, len(pending))
	}

	paged, total, err := repo.List(OrderListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 || len(paged) != 1 {
		t.Fatalf("want page 2 of 3 with 1 row, got total=%d len=%d", total, len(paged))
	}

	bySearch, _, err := repo.List(OrderListFilter{Search: "BBBB"})
	if err != nil {
		t.Fatalf("search list failed: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].OrderNo != "ORD-20260831-BBBB" {
		t.Fatalf("search should match order no fragment, got %+v", bySearch)
	}
}

func TestStatsExcludesCancelledFromRevenue(t *testing.T) {
	repo, _ := setupOrderRepositoryTest(t)
	createOrder(t, repo, "ORD-20260831-AAAA", constants.OrderStatusPending, "20.00")
	createOrder(t, repo, "ORD-20260831-BBBB", constants.OrderStatusDelivered, "30.00")
	createOrder(t, repo, "ORD-20260831-CCCC", constants.OrderStatusCancelled, "99.00")

	stats, err := repo.Stats(time.Now())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.StatusCounts[constants.OrderStatusCancelled] != 1 {
		t.Fatalf("status distribution should still count cancelled, got %+v", stats.StatusCounts)
	}
	if stats.PendingOrders != 1 {
		t.Fatalf("pending count want 1, got %d", stats.PendingOrders)
	}
	if stats.TodayOrders != 2 {
		t.Fatalf("cancelled orders must not count toward today, got %d", stats.TodayOrders)
	}
	if stats.TodayRevenue.String() != "50.00" {
		t.Fatalf("today revenue want 50.00, got %s", stats.TodayRevenue.String())
	}
}
