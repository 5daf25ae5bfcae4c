package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/campus-rent/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, ownerID, collegeID uint, title string) *models.Product {
	t.Helper()
	product := &models.Product{
		OwnerID:           ownerID,
		CollegeID:         collegeID,
		Title:             title,
		Category:          "books",
		BasePricePerMonth: models.MustMoney("10"),
		IsActive:          true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
