package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/provider"
	"github.com/pizzeria-next/internal/queue"
	"github.com/pizzeria-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func newTestConsumer(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:worker_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.StockItem{},
		&models.StockMovement{},
		&models.StockAlert{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	c := &provider.Container{}
	c.OrderRepo = repository.NewOrderRepository(db)
	c.StockRepo = repository.NewStockRepository(db)
	return NewConsumer(c), db
}

func TestHandleOrderPlaced(t *testing.T) {
	consumer, db := newTestConsumer(t)

	order := models.Order{
		OrderNo:       "ORD-20260831-AB42",
		CustomerEmail: "dana@example.com",
		OrderType:     constants.OrderTypePickup,
		Status:        constants.OrderStatusPending,
		Total:         models.NewMoneyFromString("20.00"),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order failed: %v", err)
	}

	task := asynq.NewTask(queue.TaskOrderPlaced, []byte(fmt.Sprintf(`{"order_id":%d}`, order.ID)))
	if err := consumer.handleOrderPlaced(context.Background(), task); err != nil {
		t.Fatalf("handle order placed failed: %v", err)
	}
}

func TestHandleOrderPlacedSkipsMissingOrder(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	// 订单已不存在时任务直接完成，不进入重试
	task := asynq.NewTask(queue.TaskOrderPlaced, []byte(`{"order_id":9999}`))
	if err := consumer.handleOrderPlaced(context.Background(), task); err != nil {
		t.Fatalf("missing order should not fail the task: %v", err)
	}

	// 空载荷同理
	task = asynq.NewTask(queue.TaskOrderPlaced, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderPlaced(context.Background(), task); err != nil {
		t.Fatalf("zero order id should not fail the task: %v", err)
	}
}

func TestHandleOrderPlacedRejectsGarbagePayload(t *testing.T) {
	consumer, _ := newTestConsumer(t)

	task := asynq.NewTask(queue.TaskOrderPlaced, []byte(`not-json`))
	if err := consumer.handleOrderPlaced(context.Background(), task); err == nil {
		t.Fatalf("garbage payload should surface an error for retry accounting")
	}
}

func TestHandleStockAlert(t *testing.T) {
	consumer, db := newTestConsumer(t)

	item := models.StockItem{ProductID: 1, Quantity: 2, ReorderLevel: 5}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed stock item failed: %v", err)
	}
	alert := models.StockAlert{StockItemID: item.ID, Status: constants.AlertStatusActive, QuantityAtRaise: 2}
	if err := db.Create(&alert).Error; err != nil {
		t.Fatalf("seed alert failed: %v", err)
	}

	task := asynq.NewTask(queue.TaskStockAlertRaise, []byte(fmt.Sprintf(`{"alert_id":%d}`, alert.ID)))
	if err := consumer.handleStockAlert(context.Background(), task); err != nil {
		t.Fatalf("handle stock alert failed: %v", err)
	}

	// 告警已被清理时任务直接完成
	task = asynq.NewTask(queue.TaskStockAlertRaise, []byte(`{"alert_id":9999}`))
	if err := consumer.handleStockAlert(context.Background(), task); err != nil {
		t.Fatalf("missing alert should not fail the task: %v", err)
	}
}
