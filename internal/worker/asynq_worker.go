package worker

import (
	"context"
	"errors"

	"github.com/campus-rent/internal/logger"
	"github.com/campus-rent/internal/provider"
	"github.com/campus-rent/internal/queue"
	"github.com/campus-rent/internal/service"

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
	mux.HandleFunc(queue.TaskOrderPlacedNotify, c.handleOrderPlacedNotify)
}

// handleOrderPlacedNotify 发送下单通知邮件
//
// 通知是尽力而为的：订单不存在或部分邮件失败都不让任务重试。
func (c *Consumer) handleOrderPlacedNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_placed_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderPlacedNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_order_placed_notify_payload_invalid", "error", err)
		return err
	}
	if c.OrderService == nil || c.EmailNotifier == nil {
		logger.Warnw("worker_order_placed_notify_skip_unconfigured",
			"order_id", payload.OrderID,
			"order_service_nil", c.OrderService == nil,
			"notifier_nil", c.EmailNotifier == nil,
		)
		return nil
	}
	order, err := c.OrderService.GetOrderDetail(payload.OrderID)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_order_placed_notify_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_placed_notify_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if err := c.EmailNotifier.NotifyOrderPlaced(ctx, order); err != nil {
		logger.Warnw("worker_order_placed_notify_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
		return nil
	}
	logger.Infow("worker_order_placed_notify_sent", "order_id", order.ID, "order_no", order.OrderNo)
	return nil
}
