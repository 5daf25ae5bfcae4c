package repository

import (
	"testing"

	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/models"
)

func TestOrderListByOwnerMatchesAnyItem(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)

	create := func(no string, borrower uint, owners ...uint) *models.RentalOrder {
		order := &models.RentalOrder{
			OrderNo:           no,
			UserID:            borrower,
			Status:            constants.OrderStatusActive,
			ShippingAddressID: 1,
			TotalAmount:       models.MustMoney("10"),
		}
		items := make([]models.RentalOrderItem, 0, len(owners))
		for i, owner := range owners {
			items = append(items, models.RentalOrderItem{
				ProductID:      uint(i + 1),
				OwnerID:        owner,
				Title:          "item",
				Quantity:       1,
				DurationMonths: 1,
				PricePerMonth:  models.MustMoney("10"),
			})
		}
		if err := repo.Create(order, items); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
		return order
	}

	create("R1", 100, 1, 2)
	create("R2", 100, 3)
	create("R3", 101, 2, 2)

	orders, total, err := repo.List(OrderListFilter{OwnerID: 2, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by owner failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("owner orders want 2 got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.List(OrderListFilter{UserID: 100})
	if err != nil {
		t.Fatalf("list by borrower failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("borrower orders want 2 got total=%d len=%d", total, len(orders))
	}
	for _, order := range orders {
		if len(order.Items) == 0 {
			t.Fatalf("order %s should preload items", order.OrderNo)
		}
	}
}

func TestOrderUpdateStatusMergesUpdates(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := &models.RentalOrder{OrderNo: "R9", UserID: 1, Status: constants.OrderStatusPendingPayment, ShippingAddressID: 1}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := repo.UpdateStatus(order.ID, constants.OrderStatusCancelled, nil); err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	got, err := repo.GetByID(order.ID)
	if err != nil || got == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want %s got %s", constants.OrderStatusCancelled, got.Status)
	}
}
