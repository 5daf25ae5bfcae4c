package queue

import (
	"testing"

	"github.com/campus-rent/internal/config"

	"github.com/hibiken/asynq"
)

func TestOrderPlacedNotifyTaskPayload(t *testing.T) {
	task, err := NewOrderPlacedNotifyTask(OrderPlacedNotifyPayload{OrderID: 42})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskOrderPlacedNotify {
		t.Fatalf("task type want %s got %s", TaskOrderPlacedNotify, task.Type())
	}
	payload, err := ParseOrderPlacedNotifyPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.OrderID != 42 {
		t.Fatalf("order id want 42 got %d", payload.OrderID)
	}
}

func TestParseOrderPlacedNotifyPayloadRejectsMissingOrder(t *testing.T) {
	if _, err := ParseOrderPlacedNotifyPayload(asynq.NewTask(TaskOrderPlacedNotify, []byte(`{}`))); err == nil {
		t.Fatalf("expected error for missing order_id")
	}
	if _, err := ParseOrderPlacedNotifyPayload(asynq.NewTask(TaskOrderPlacedNotify, []byte(`not-json`))); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderPlacedNotify(OrderPlacedNotifyPayload{OrderID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt %+v", opt)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("concurrency want 10 got %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("default queue weight want 1 got %v", cfg.Queues)
	}
}
