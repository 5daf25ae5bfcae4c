package service

import (
	"context"
	"strings"
	"testing"

	"github.com/campus-rent/internal/repository"
)

func TestEmailOrderNotifierGroupsByOwner(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	ownerA := env.createUser(t, "a@test.edu", true)
	ownerB := env.createUser(t, "b@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	env.addToCart(t, borrower.ID, env.createProduct(t, ownerA, "Lamp", "5").ID, 1, 1)
	env.addToCart(t, borrower.ID, env.createProduct(t, ownerA, "Fan", "6").ID, 1, 1)
	env.addToCart(t, borrower.ID, env.createProduct(t, ownerB, "Heater", "7").ID, 1, 1)
	order := env.checkout(t, borrower.ID)

	sender := &recordingSender{}
	notifier := NewEmailOrderNotifier(sender, repository.NewUserRepository(env.db))
	if err := notifier.NotifyOrderPlaced(context.Background(), order); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 emails (2 owners + borrower), got %d", len(sender.sent))
	}
	if sender.sent[0].to != "a@test.edu" || sender.sent[1].to != "b@test.edu" || sender.sent[2].to != "borrower@test.edu" {
		t.Fatalf("unexpected recipients: %+v", sender.sent)
	}
	ownerABody := sender.sent[0].body
	if !strings.Contains(ownerABody, "Lamp") || !strings.Contains(ownerABody, "Fan") || strings.Contains(ownerABody, "Heater") {
		t.Fatalf("owner A email should list only their items:\n%s", ownerABody)
	}
	if !strings.Contains(sender.sent[2].body, order.OrderNo) {
		t.Fatalf("borrower email should mention order number:\n%s", sender.sent[2].body)
	}
}

func TestEmailOrderNotifierContinuesAfterFailure(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	ownerA := env.createUser(t, "a@test.edu", true)
	ownerB := env.createUser(t, "b@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	env.addToCart(t, borrower.ID, env.createProduct(t, ownerA, "Lamp", "5").ID, 1, 1)
	env.addToCart(t, borrower.ID, env.createProduct(t, ownerB, "Heater", "7").ID, 1, 1)
	order := env.checkout(t, borrower.ID)

	sender := &recordingSender{failTo: map[string]bool{"a@test.edu": true}}
	notifier := NewEmailOrderNotifier(sender, repository.NewUserRepository(env.db))
	err := notifier.NotifyOrderPlaced(context.Background(), order)
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected remaining 2 emails to be sent, got %d", len(sender.sent))
	}
}

func TestQueueOrderNotifierDisabledClientIsNoop(t *testing.T) {
	notifier := NewQueueOrderNotifier(nil)
	if err := notifier.NotifyOrderPlaced(context.Background(), nil); err != nil {
		t.Fatalf("expected noop, got %v", err)
	}
}
