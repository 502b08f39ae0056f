package queue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/estore-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderPlaced 订单提交后的确认任务
	TaskOrderPlaced = constants.TaskOrderPlaced
)

// OrderPlacedPayload 订单提交任务载荷
type OrderPlacedPayload struct {
	OrderID  uint   `json:"order_id"`
	OrderNo  string `json:"order_no"`
	DeviceID string `json:"device_id,omitempty"`
}

// NewOrderPlacedTask 创建订单提交任务
func NewOrderPlacedTask(payload OrderPlacedPayload) (*asynq.Task, error) {
	if payload.OrderID == 0 {
		return nil, fmt.Errorf("order placed payload missing order_id")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPlaced, body), nil
}

// ParseOrderPlacedPayload 解析订单提交任务载荷
func ParseOrderPlacedPayload(task *asynq.Task) (OrderPlacedPayload, error) {
	var payload OrderPlacedPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	payload.OrderNo = strings.TrimSpace(payload.OrderNo)
	if payload.OrderID == 0 {
		return payload, fmt.Errorf("order placed payload missing order_id")
	}
	return payload, nil
}
