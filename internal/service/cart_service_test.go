package service

import (
	"errors"
	"testing"

	"github.com/campus-rent/internal/models"
)

func TestCartAddItemMergesQuantityAndOverwritesDuration(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := env.createUser(t, "owner@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	product := env.createProduct(t, owner, "Desk Lamp", "12.50")

	first := env.addToCart(t, borrower.ID, product.ID, 1, 3)
	second := env.addToCart(t, borrower.ID, product.ID, 2, 6)
	if first.ID != second.ID {
		t.Fatalf("expected merge into item %d, got %d", first.ID, second.ID)
	}

	view, err := env.cart.GetCart(borrower.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Items))
	}
	item := view.Items[0]
	if item.Quantity != 3 || item.DurationMonths != 6 {
		t.Fatalf("unexpected merged item: quantity=%d duration=%d", item.Quantity, item.DurationMonths)
	}
	if view.Total.String() != "225.00" {
		t.Fatalf("expected total 225.00, got %s", view.Total.String())
	}
}

func TestCartPriceSnapshotSurvivesProductPriceChange(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := env.createUser(t, "owner@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	product := env.createProduct(t, owner, "Bike", "40")

	env.addToCart(t, borrower.ID, product.ID, 1, 1)
	if err := env.db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("base_price_per_month", models.MustMoney("99")).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	env.addToCart(t, borrower.ID, product.ID, 1, 2)

	view, err := env.cart.GetCart(borrower.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if got := view.Items[0].PricePerMonth.String(); got != "40.00" {
		t.Fatalf("expected snapshot price 40.00, got %s", got)
	}
}

func TestCartAddItemValidation(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := env.createUser(t, "owner@test.edu", true)
	borrower := env.createUser(t, "borrower@test.edu", false)
	product := env.createProduct(t, owner, "Chair", "5")

	cases := []AddCartItemInput{
		{UserID: borrower.ID, CollegeID: env.college.ID, ProductID: product.ID, Quantity: 0, DurationMonths: 1},
		{UserID: borrower.ID, CollegeID: env.college.ID, ProductID: product.ID, Quantity: 1, DurationMonths: 0},
		{UserID: borrower.ID, CollegeID: env.college.ID, ProductID: product.ID, Quantity: -2, DurationMonths: 3},
	}
	for _, input := range cases {
		if _, err := env.cart.AddItem(input); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}

	if _, err := env.cart.AddItem(AddCartItemInput{UserID: borrower.ID, CollegeID: env.college.ID, ProductID: 9999, Quantity: 1, DurationMonths: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected product not available, got %v", err)
	}

	if err := env.db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	if _, err := env.cart.AddItem(AddCartItemInput{UserID: borrower.ID, CollegeID: env.college.ID, ProductID: product.ID, Quantity: 1, DurationMonths: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected inactive product rejected, got %v", err)
	}
}

func TestCartAddItemRejectsOtherCollegeProduct(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	borrower := env.createUser(t, "borrower@test.edu", false)
	foreign := env.createForeignLender(t, "other.edu")
	product := env.createProduct(t, foreign, "Bike", "15")

	_, err := env.cart.AddItem(AddCartItemInput{UserID: borrower.ID, CollegeID: env.college.ID, ProductID: product.ID, Quantity: 1, DurationMonths: 1})
	if !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected other college product rejected, got %v", err)
	}
	view, err := env.cart.GetCart(borrower.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(view.Items))
	}
}

func TestCartItemOwnershipIsEnforced(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	owner := env.createUser(t, "owner@test.edu", true)
	alice := env.createUser(t, "alice@test.edu", false)
	mallory := env.createUser(t, "mallory@test.edu", false)
	product := env.createProduct(t, owner, "Monitor", "20")

	item := env.addToCart(t, alice.ID, product.ID, 1, 1)
	quantity := 5
	if _, err := env.cart.UpdateItem(UpdateCartItemInput{UserID: mallory.ID, ItemID: item.ID, Quantity: &quantity}); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected cart item not found for other user, got %v", err)
	}
	if err := env.cart.RemoveItem(mallory.ID, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected cart item not found on remove, got %v", err)
	}

	updated, err := env.cart.UpdateItem(UpdateCartItemInput{UserID: alice.ID, ItemID: item.ID, Quantity: &quantity})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", updated.Quantity)
	}
	if err := env.cart.RemoveItem(alice.ID, item.ID); err != nil {
		t.Fatalf("owner remove failed: %v", err)
	}
	view, err := env.cart.GetCart(alice.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(view.Items) != 0 || !view.Total.Decimal.IsZero() {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestCartGetCartWithoutCartReturnsEmptyView(t *testing.T) {
	env := setupRentalTestEnv(t, OrderServiceOptions{})
	user := env.createUser(t, "new@test.edu", false)
	view, err := env.cart.GetCart(user.ID)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if view.ID != 0 || len(view.Items) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}
