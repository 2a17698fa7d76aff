package queue

import (
	"github.com/pizzeria-next/internal/logger"
)

// Notifier 把领域事件转换为队列任务，投递失败只记日志。
type Notifier struct {
	client *Client
}

// NewNotifier 创建事件通知器
func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

// NotifyOrderPlaced 下单成功事件
func (n *Notifier) NotifyOrderPlaced(orderID uint) {
	if n == nil || orderID == 0 {
		return
	}
	if err := n.client.EnqueueOrderPlaced(OrderPlacedPayload{OrderID: orderID}); err != nil {
		logger.Warnw("enqueue_order_placed_failed", "order_id", orderID, "error", err)
	}
}

// NotifyStockAlert 低库存告警触发事件
func (n *Notifier) NotifyStockAlert(alertID uint) {
	if n == nil || alertID == 0 {
		return
	}
	if err := n.client.EnqueueStockAlert(StockAlertPayload{AlertID: alertID}); err != nil {
		logger.Warnw("enqueue_stock_alert_failed", "alert_id", alertID, "error", err)
	}
}
