package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/models"
)

func TestCreateOrderSnapshotsCartAndActivates(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	ownerA := env.createUser(t, "a@test.edu", true)
	ownerB := env.createUser(t, "b@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	laptop := env.createProduct(t, ownerA, "Laptop", "100")
	books := env.createProduct(t, ownerB, "Textbooks", "50")

	env.addToCart(t, borrower.ID, laptop.ID, 2, 3)
	env.addToCart(t, borrower.ID, books.ID, 1, 5)

	order := env.checkout(t, borrower.ID)
	if order.TotalAmount.String() != "850.00" {
		t.Fatalf("expected total 850.00, got %s", order.TotalAmount.String())
	}
	if order.Status != constants.OrderStatusActive {
		t.Fatalf("expected ACTIVE, got %s", order.Status)
	}
	if order.StartDate == nil {
		t.Fatalf("expected start date to be set")
	}
	if order.EndDate != nil {
		t.Fatalf("expected end date to be empty")
	}
	if !strings.HasPrefix(order.OrderNo, "RO") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	if order.Items[0].OwnerID != ownerA.ID || order.Items[0].Title != "Laptop" {
		t.Fatalf("unexpected first item snapshot: %+v", order.Items[0])
	}
	if order.ShippingAddress == nil || !order.ShippingAddress.IsDefault {
		t.Fatalf("expected checkout address to be saved as default, got %+v", order.ShippingAddress)
	}

	view, err := env.cart.GetCart(borrower.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.ID == 0 {
		t.Fatalf("cart should persist after checkout")
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(view.Items))
	}
	if len(env.notifier.orders) != 1 || env.notifier.orders[0] != order.ID {
		t.Fatalf("expected one notification for order %d, got %v", order.ID, env.notifier.orders)
	}

	// 下单后修改商品价格不影响订单金额
	if err := env.db.Model(&models.Product{}).Where("id = ?", laptop.ID).
		Update("base_price_per_month", models.MustMoney("1")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	reloaded, err := env.order.GetOrderDetail(order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.TotalAmount.String() != "850.00" {
		t.Fatalf("order total changed to %s", reloaded.TotalAmount.String())
	}
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	borrower := env.createUser(t, "borrower@test.edu", false)

	if _, err := env.order.CreateOrder(context.Background(), borrower.ID, sampleAddress()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
	var count int64
	env.db.Model(&models.Address{}).Count(&count)
	if count != 0 {
		t.Fatalf("no address should be created for a failed checkout, got %d", count)
	}
}

func TestCreateOrderRollsBackOnInvalidAddress(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := env.createUser(t, "owner@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	product := env.createProduct(t, owner, "Kettle", "8")
	env.addToCart(t, borrower.ID, product.ID, 1, 1)

	input := sampleAddress()
	input.PostalCode = ""
	if _, err := env.order.CreateOrder(context.Background(), borrower.ID, input); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	view, err := env.cart.GetCart(borrower.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("cart should be untouched, got %d items", len(view.Items))
	}
}

func TestCreateOrderIgnoresNotifierFailure(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	env.notifier.err = errors.New("mail server down")
	owner := env.createUser(t, "owner@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	product := env.createProduct(t, owner, "Tent", "30")
	env.addToCart(t, borrower.ID, product.ID, 1, 2)

	order := env.checkout(t, borrower.ID)
	if order.Status != constants.OrderStatusActive {
		t.Fatalf("expected ACTIVE, got %s", order.Status)
	}
}

func TestSetOrderStatusCompletionRules(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := env.createUser(t, "owner@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	stranger := env.createUser(t, "stranger@test.edu", false)
	product := env.createProduct(t, owner, "Camera", "60")
	env.addToCart(t, borrower.ID, product.ID, 1, 1)
	order := env.checkout(t, borrower.ID)

	if _, err := env.order.SetOrderStatus(order.ID, stranger.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}
	if _, err := env.order.SetOrderStatus(order.ID, borrower.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected borrower completion to be forbidden, got %v", err)
	}
	if _, err := env.order.SetOrderStatus(order.ID, owner.ID, "shipped"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := env.order.SetOrderStatus(99999, owner.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected order not found, got %v", err)
	}

	pending, err := env.order.SetOrderStatus(order.ID, owner.ID, constants.OrderStatusPendingPayment)
	if err != nil {
		t.Fatalf("move back to pending failed: %v", err)
	}
	if pending.Status != constants.OrderStatusPendingPayment {
		t.Fatalf("expected PENDING_PAYMENT, got %s", pending.Status)
	}
	if _, err := env.order.SetOrderStatus(order.ID, owner.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected completing a pending order to fail, got %v", err)
	}
	if _, err := env.order.SetOrderStatus(order.ID, owner.ID, constants.OrderStatusActive); err != nil {
		t.Fatalf("reactivate failed: %v", err)
	}

	completed, err := env.order.SetOrderStatus(order.ID, owner.ID, "completed")
	if err != nil {
		t.Fatalf("owner completion failed: %v", err)
	}
	if completed.Status != constants.OrderStatusCompleted || completed.EndDate == nil {
		t.Fatalf("expected COMPLETED with end date, got %s %v", completed.Status, completed.EndDate)
	}

	if _, err := env.order.SetOrderStatus(order.ID, borrower.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected cancel after complete to fail, got %v", err)
	}
	if _, err := env.order.SetOrderStatus(order.ID, owner.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected re-complete to fail, got %v", err)
	}
}

func TestSetOrderStatusCancelThenCompleteFails(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := env.createUser(t, "owner@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	product := env.createProduct(t, owner, "Scooter", "25")
	env.addToCart(t, borrower.ID, product.ID, 1, 1)
	order := env.checkout(t, borrower.ID)

	cancelled, err := env.order.SetOrderStatus(order.ID, borrower.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("borrower cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if _, err := env.order.SetOrderStatus(order.ID, owner.ID, constants.OrderStatusCompleted); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("expected completion of cancelled order to fail, got %v", err)
	}
}

func TestSetOrderStatusPermissiveAndStrictModes(t *testing.T) {
	permissive := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := permissive.createUser(t, "owner@test.edu", true)
	borrower := permissive.createUser(t, "borrower@test.edu", false)
	product := permissive.createProduct(t, owner, "Guitar", "15")
	permissive.addToCart(t, borrower.ID, product.ID, 1, 1)
	order := permissive.checkout(t, borrower.ID)

	if _, err := permissive.order.SetOrderStatus(order.ID, borrower.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	revived, err := permissive.order.SetOrderStatus(order.ID, borrower.ID, constants.OrderStatusActive)
	if err != nil {
		t.Fatalf("permissive mode should allow CANCELLED -> ACTIVE, got %v", err)
	}
	if revived.Status != constants.OrderStatusActive {
		t.Fatalf("expected ACTIVE, got %s", revived.Status)
	}

	strict := setupRentalTestEnv(t, OrderServiceOptions{StrictTransitions: true})
	owner = strict.createUser(t, "owner@test.edu", true)
	borrower = strict.createUser(t, "borrower@test.edu", false)
	product = strict.createProduct(t, owner, "Guitar", "15")
	strict.addToCart(t, borrower.ID, product.ID, 1, 1)
	order = strict.checkout(t, borrower.ID)

	if _, err := strict.order.SetOrderStatus(order.ID, borrower.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := strict.order.SetOrderStatus(order.ID, borrower.ID, constants.OrderStatusActive); !errors.Is(err, ErrOrderTransitionInvalid) {
		t.Fatalf("strict mode should reject CANCELLED -> ACTIVE, got %v", err)
	}
}

func TestOrderQueriesByParticipant(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := env.createUser(t, "owner@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	stranger := env.createUser(t, "stranger@test.edu", false)
	product := env.createProduct(t, owner, "Projector", "45")
	env.addToCart(t, borrower.ID, product.ID, 1, 1)
	order := env.checkout(t, borrower.ID)

	if _, err := env.order.GetOrderForParticipant(order.ID, owner.ID); err != nil {
		t.Fatalf("owner should see order: %v", err)
	}
	if _, err := env.order.GetOrderForParticipant(order.ID, stranger.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("stranger should not see order, got %v", err)
	}

	borrowed, total, err := env.order.ListBorrowerOrders(borrower.ID, 1, 20, "")
	if err != nil || total != 1 || len(borrowed) != 1 {
		t.Fatalf("unexpected borrower list: total=%d len=%d err=%v", total, len(borrowed), err)
	}
	lent, total, err := env.order.ListLenderOrders(owner.ID, 1, 20, "active")
	if err != nil || total != 1 || len(lent) != 1 {
		t.Fatalf("unexpected lender list: total=%d len=%d err=%v", total, len(lent), err)
	}
	if _, _, err := env.order.ListLenderOrders(owner.ID, 1, 20, "bogus"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid status filter, got %v", err)
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPendingPayment, constants.OrderStatusActive, true},
		{constants.OrderStatusActive, constants.OrderStatusCompleted, true},
		{constants.OrderStatusActive, constants.OrderStatusCancelled, true},
		{constants.OrderStatusCancelled, constants.OrderStatusActive, false},
		{constants.OrderStatusCompleted, constants.OrderStatusActive, false},
		{constants.OrderStatusActive, constants.OrderStatusActive, true},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.from, tc.to); got != tc.want {
			t.Fatalf("%s -> %s want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}
