package worker

import (
	"context"
	"encoding/json"

	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/provider"
	"github.com/pizzeria-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
	mux.HandleFunc(queue.TaskStockAlertRaise, c.handleStockAlert)
}

// handleOrderPlaced 下单回执：渲染回执内容交给外部渠道，这里落地为结构化日志。
func (c *Consumer) handleOrderPlaced(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPlacedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_placed_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_placed_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_placed_fetch_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_placed_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	logger.Infow("worker_order_receipt_emitted",
		"order_no", order.OrderNo,
		"customer_email", order.CustomerEmail,
		"order_type", order.OrderType,
		"item_count", len(order.Items),
		"total", order.Total.String(),
	)
	return nil
}

// handleStockAlert 低库存告警通知：附带商品与阈值信息输出告警事件。
func (c *Consumer) handleStockAlert(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_stock_alert_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.StockAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_stock_alert_unmarshal_failed", "error", err)
		return err
	}
	if payload.AlertID == 0 {
		logger.Debugw("worker_stock_alert_skip_invalid_payload", "alert_id", payload.AlertID)
		return nil
	}
	alert, err := c.StockRepo.GetAlertByID(payload.AlertID)
	if err != nil {
		logger.Warnw("worker_stock_alert_fetch_failed", "alert_id", payload.AlertID, "error", err)
		return err
	}
	if alert == nil {
		logger.Debugw("worker_stock_alert_skip_not_found", "alert_id", payload.AlertID)
		return nil
	}
	productName := ""
	if alert.StockItem != nil && alert.StockItem.Product != nil {
		productName = alert.StockItem.Product.Name
	}
	logger.Warnw("worker_stock_alert_notified",
		"alert_id", alert.ID,
		"stock_item_id", alert.StockItemID,
		"product_name", productName,
		"quantity_at_raise", alert.QuantityAtRaise,
		"status", alert.Status,
	)
	return nil
}
