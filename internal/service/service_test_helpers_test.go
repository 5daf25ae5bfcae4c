package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type rentalTestEnv struct {
	db       *gorm.DB
	notifier *capturingNotifier
	cart     *CartService
	address  *AddressService
	order    *OrderService
	review   *ReviewService
	product  *ProductService
	lender   *LenderApplicationService
	college  *models.College
}

type capturingNotifier struct {
	mu     sync.Mutex
	orders []uint
	err    error
}

func (n *capturingNotifier) NotifyOrderPlaced(_ context.Context, order *models.RentalOrder) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.orders = append(n.orders, order.ID)
	return n.err
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type recordingSender struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool
}

func (s *recordingSender) SendMail(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failTo[to] {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func openServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func setupRentalTestEnv(t *testing.T, options OrderServiceOptions) *rentalTestEnv {
	t.Helper()
	db := openServiceTestDB(t, "rental_service")
	college := &models.College{Name: "Test University", EmailDomain: "test.edu", IsActive: true}
	if err := db.Create(college).Error; err != nil {
		t.Fatalf("create college failed: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifier := &capturingNotifier{}

	return &rentalTestEnv{
		db:       db,
		notifier: notifier,
		cart:     NewCartService(cartRepo, productRepo),
		address:  NewAddressService(addressRepo),
		order:    NewOrderService(orderRepo, cartRepo, addressRepo, notifier, options),
		review:   NewReviewService(reviewRepo, productRepo, orderRepo),
		product:  NewProductService(productRepo, userRepo),
		lender:   NewLenderApplicationService(repository.NewLenderApplicationRepository(db), userRepo),
		college:  college,
	}
}

func (e *rentalTestEnv) createUser(t *testing.T, email string, lender bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		DisplayName:  email,
		CollegeID:    e.college.ID,
		Role:         constants.UserRoleStudent,
		Status:       constants.UserStatusActive,
		IsLender:     lender,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (e *rentalTestEnv) createForeignLender(t *testing.T, domain string) *models.User {
	t.Helper()
	college := &models.College{Name: domain, EmailDomain: domain, IsActive: true}
	if err := e.db.Create(college).Error; err != nil {
		t.Fatalf("create college failed: %v", err)
	}
	user := &models.User{
		Email:        "lender@" + domain,
		PasswordHash: "x",
		DisplayName:  "lender@" + domain,
		CollegeID:    college.ID,
		Role:         constants.UserRoleStudent,
		Status:       constants.UserStatusActive,
		IsLender:     true,
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func (e *rentalTestEnv) createProduct(t *testing.T, owner *models.User, title, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		OwnerID:           owner.ID,
		CollegeID:         owner.CollegeID,
		Title:             title,
		Category:          constants.CategoryElectronics,
		BasePricePerMonth: models.MustMoney(price),
		IsActive:          true,
	}
	if err := e.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (e *rentalTestEnv) addToCart(t *testing.T, userID, productID uint, quantity, months int) *models.CartItem {
	t.Helper()
	item, err := e.cart.AddItem(AddCartItemInput{
		UserID:         userID,
		CollegeID:      e.college.ID,
		ProductID:      productID,
		Quantity:       quantity,
		DurationMonths: months,
	})
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	return item
}

func sampleAddress() AddressInput {
	return AddressInput{
		Line1:      "77 Campus Ave",
		City:       "Cambridge",
		State:      "MA",
		PostalCode: "02139",
		Country:    "US",
	}
}

// checkout 下单并返回订单，失败直接终止测试
func (e *rentalTestEnv) checkout(t *testing.T, userID uint) *models.RentalOrder {
	t.Helper()
	order, err := e.order.CreateOrder(context.Background(), userID, sampleAddress())
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return order
}
