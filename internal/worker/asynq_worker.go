package worker

import (
	"context"
	"errors"

	"github.com/estore-next/internal/logger"
	"github.com/estore-next/internal/provider"
	"github.com/estore-next/internal/queue"
	"github.com/estore-next/internal/service"

	"github.com/hibiken/asynq"
)

// OrderConfirmer 订单确认能力
type OrderConfirmer interface {
	ConfirmOrder(orderID uint) error
}

// Consumer 异步任务消费者
type Consumer struct {
	OrderService OrderConfirmer
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	consumer := &Consumer{}
	if c != nil && c.OrderService != nil {
		consumer.OrderService = c.OrderService
	}
	return consumer
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderPlaced, c.handleOrderPlaced)
}

func (c *Consumer) handleOrderPlaced(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_placed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderPlacedPayload(task)
	if err != nil {
		// 载荷无法解析时重试没有意义
		logger.Warnw("worker_order_placed_payload_invalid", "error", err)
		return asynq.SkipRetry
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_placed_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.ConfirmOrder(payload.OrderID); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_placed_skip_order_not_found", "order_id", payload.OrderID, "order_no", payload.OrderNo)
			return nil
		case errors.Is(err, service.ErrOrderStatusInvalid):
			logger.Debugw("worker_order_placed_skip_invalid_status", "order_id", payload.OrderID, "order_no", payload.OrderNo)
			return nil
		case errors.Is(err, service.ErrOrderFetchFailed):
			logger.Warnw("worker_order_placed_fetch_failed", "order_id", payload.OrderID, "error", err)
			return err
		default:
			logger.Warnw("worker_order_placed_confirm_failed", "order_id", payload.OrderID, "order_no", payload.OrderNo, "error", err)
			return err
		}
	}
	logger.Infow("worker_order_confirmed", "order_id", payload.OrderID, "order_no", payload.OrderNo, "device_id", payload.DeviceID)
	return nil
}
