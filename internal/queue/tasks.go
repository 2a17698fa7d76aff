package queue

import (
	"encoding/json"

	"github.com/pizzeria-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 下单回执任务
	TaskOrderPlaced = constants.TaskOrderPlaced
	// TaskStockAlertRaise 低库存告警通知任务
	TaskStockAlertRaise = constants.TaskStockAlertRaise
)

// OrderPlacedPayload 下单回执任务载荷
type OrderPlacedPayload struct {
	OrderID uint `json:"order_id"`
}

// StockAlertPayload 低库存告警任务载荷
type StockAlertPayload struct {
	AlertID uint `json:"alert_id"`
}

// NewOrderPlacedTask 创建下单回执任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body), nil
}

// NewStockAlertTask 创建低库存告警任务
func NewStockAlertTask(payload StockAlertPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockAlertRaise, body), nil
}
