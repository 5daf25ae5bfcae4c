package queue

import (
	"encoding/json"
	"fmt"

	"github.com/campus-rent/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlacedNotify 下单成功通知任务
	TaskOrderPlacedNotify = constants.TaskOrderPlacedNotify
)

// OrderPlacedNotifyPayload 下单通知任务载荷
type OrderPlacedNotifyPayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderPlacedNotifyTask 创建下单通知任务
func NewOrderPlacedNotifyTask(payload OrderPlacedNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlacedNotify, body), nil
}

// ParseOrderPlacedNotifyPayload 解析下单通知任务载荷
func ParseOrderPlacedNotifyPayload(task *asynq.Task) (OrderPlacedNotifyPayload, error) {
	var payload OrderPlacedNotifyPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	if payload.OrderID == 0 {
		return payload, fmt.Errorf("order_id is required")
	}
	return payload, nil
}
