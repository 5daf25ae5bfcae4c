package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campus-rent/internal/cache"
	"github.com/campus-rent/internal/config"
	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type apiEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	RequestID  string          `json:"request_id"`
	Pagination *struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type routerTestEnv struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
}

func setupRouterTest(t *testing.T) *routerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	if err := db.Create(&models.College{Name: "Test University", EmailDomain: "test.edu", IsActive: true}).Error; err != nil {
		t.Fatalf("create college failed: %v", err)
	}
	_ = cache.InitRedis(&config.RedisConfig{Enabled: false})

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "debug"},
		UserJWT: config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true},
		},
		Notification: config.NotificationConfig{Mode: constants.NotificationModeInline},
	}
	container := provider.NewContainer(cfg)
	return &routerTestEnv{t: t, engine: SetupRouter(cfg, container), db: db}
}

func (e *routerTestEnv) do(method, path, token string, body interface{}) (int, apiEnvelope) {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)

	var env apiEnvelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			e.t.Fatalf("decode response failed: %v body=%s", err, w.Body.String())
		}
	}
	return w.Code, env
}

func (e *routerTestEnv) register(email string) (uint, string) {
	e.t.Helper()
	code, resp := e.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"email": email, "password": "password1"})
	if code != http.StatusCreated {
		e.t.Fatalf("register %s want 201 got %d: %s", email, code, resp.Error)
	}
	var auth struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &auth); err != nil {
		e.t.Fatalf("decode auth failed: %v", err)
	}
	return auth.User.ID, auth.Token
}

func TestRentalFlowThroughRouter(t *testing.T) {
	env := setupRouterTest(t)

	lenderID, lenderToken := env.register("lender@test.edu")
	_, borrowerToken := env.register("borrower@test.edu")

	code, _ := env.do(http.MethodPost, "/api/v1/products", lenderToken, gin.H{"title": "Monitor", "base_price_per_month": "100.00"})
	if code != http.StatusForbidden {
		t.Fatalf("non-lender create product want 403 got %d", code)
	}
	if err := env.db.Model(&models.User{}).Where("id = ?", lenderID).Update("is_lender", true).Error; err != nil {
		t.Fatalf("mark lender failed: %v", err)
	}

	code, resp := env.do(http.MethodPost, "/api/v1/products", lenderToken, gin.H{
		"title":                "Monitor",
		"category":             "electronics",
		"base_price_per_month": "100.00",
	})
	if code != http.StatusCreated {
		t.Fatalf("create product want 201 got %d: %s", code, resp.Error)
	}
	var product models.Product
	if err := json.Unmarshal(resp.Data, &product); err != nil {
		t.Fatalf("decode product failed: %v", err)
	}

	code, resp = env.do(http.MethodGet, "/api/v1/products", borrowerToken, nil)
	if code != http.StatusOK || resp.Pagination == nil || resp.Pagination.Total != 1 {
		t.Fatalf("list products want 1 item got code=%d resp=%+v", code, resp)
	}

	code, resp = env.do(http.MethodPost, "/api/v1/cart", borrowerToken, gin.H{
		"product_id":      product.ID,
		"quantity":        2,
		"duration_months": 3,
	})
	if code != http.StatusCreated {
		t.Fatalf("add cart item want 201 got %d: %s", code, resp.Error)
	}

	code, resp = env.do(http.MethodPost, "/api/v1/checkout", borrowerToken, gin.H{
		"address": gin.H{"line1": "1 Campus Way", "city": "Springfield", "state": "IL", "postal_code": "62701", "country": "US"},
	})
	if code != http.StatusCreated {
		t.Fatalf("checkout want 201 got %d: %s", code, resp.Error)
	}
	var order struct {
		ID          uint   `json:"id"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
	}
	if err := json.Unmarshal(resp.Data, &order); err != nil {
		t.Fatalf("decode order failed: %v", err)
	}
	if order.TotalAmount != "600.00" || order.Status != constants.OrderStatusActive {
		t.Fatalf("unexpected order: %+v", order)
	}

	code, resp = env.do(http.MethodGet, "/api/v1/cart", borrowerToken, nil)
	if code != http.StatusOK {
		t.Fatalf("get cart want 200 got %d", code)
	}
	var cart struct {
		Items []json.RawMessage `json:"items"`
	}
	_ = json.Unmarshal(resp.Data, &cart)
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d items", len(cart.Items))
	}

	path := fmt.Sprintf("/api/v1/orders/%d/status", order.ID)
	if code, _ := env.do(http.MethodPatch, path, borrowerToken, gin.H{"status": constants.OrderStatusCompleted}); code != http.StatusForbidden {
		t.Fatalf("borrower completing order want 403 got %d", code)
	}
	if code, resp := env.do(http.MethodPatch, path, lenderToken, gin.H{"status": constants.OrderStatusCompleted}); code != http.StatusOK {
		t.Fatalf("owner completing order want 200 got %d: %s", code, resp.Error)
	}

	code, resp = env.do(http.MethodPost, "/api/v1/reviews", borrowerToken, gin.H{"product_id": product.ID, "rating": 4, "comment": "solid"})
	if code != http.StatusCreated {
		t.Fatalf("review want 201 got %d: %s", code, resp.Error)
	}
	code, resp = env.do(http.MethodGet, fmt.Sprintf("/api/v1/products/%d", product.ID), borrowerToken, nil)
	if code != http.StatusOK {
		t.Fatalf("get product want 200 got %d", code)
	}
	if err := json.Unmarshal(resp.Data, &product); err != nil {
		t.Fatalf("decode product failed: %v", err)
	}
	if product.Rating != 4 || product.RatingCount != 1 {
		t.Fatalf("rating not aggregated: %v/%d", product.Rating, product.RatingCount)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupRouterTest(t)

	code, resp := env.do(http.MethodGet, "/api/v1/cart", "", nil)
	if code != http.StatusUnauthorized || resp.Error == "" {
		t.Fatalf("cart without token want 401 got %d %+v", code, resp)
	}
	if code, _ := env.do(http.MethodGet, "/api/v1/cart", "garbage", nil); code != http.StatusUnauthorized {
		t.Fatalf("cart with bad token want 401 got %d", code)
	}
	if code, _ := env.do(http.MethodGet, "/api/v1/colleges", "", nil); code != http.StatusOK {
		t.Fatalf("colleges should be public, got %d", code)
	}
}

func TestDisabledUserRejected(t *testing.T) {
	env := setupRouterTest(t)
	userID, token := env.register("gone@test.edu")
	if err := env.db.Model(&models.User{}).Where("id = ?", userID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if code, _ := env.do(http.MethodGet, "/api/v1/me", token, nil); code != http.StatusUnauthorized {
		t.Fatalf("disabled user want 401 got %d", code)
	}
}

func TestAdminLenderReviewRequiresAdminRole(t *testing.T) {
	env := setupRouterTest(t)

	studentID, studentToken := env.register("student@test.edu")
	adminID, adminToken := env.register("staff@test.edu")
	if err := env.db.Model(&models.User{}).Where("id = ?", adminID).Update("role", constants.UserRoleAdmin).Error; err != nil {
		t.Fatalf("promote admin failed: %v", err)
	}

	code, resp := env.do(http.MethodPost, "/api/v1/lender-applications", studentToken, gin.H{"student_id_number": "S-1001", "reason": "textbooks"})
	if code != http.StatusCreated {
		t.Fatalf("apply want 201 got %d: %s", code, resp.Error)
	}
	var app models.LenderApplication
	if err := json.Unmarshal(resp.Data, &app); err != nil {
		t.Fatalf("decode application failed: %v", err)
	}

	if code, _ := env.do(http.MethodGet, "/api/v1/admin/lender-applications", studentToken, nil); code != http.StatusForbidden {
		t.Fatalf("student listing applications want 403 got %d", code)
	}

	code, resp = env.do(http.MethodGet, "/api/v1/admin/lender-applications?status=pending", adminToken, nil)
	if code != http.StatusOK || resp.Pagination == nil || resp.Pagination.Total != 1 {
		t.Fatalf("admin list want 1 pending got code=%d resp=%+v", code, resp)
	}

	approvePath := fmt.Sprintf("/api/v1/admin/lender-applications/%d/approve", app.ID)
	if code, resp := env.do(http.MethodPost, approvePath, adminToken, gin.H{"note": "ok"}); code != http.StatusOK {
		t.Fatalf("approve want 200 got %d: %s", code, resp.Error)
	}
	if code, _ := env.do(http.MethodPost, approvePath, adminToken, nil); code != http.StatusConflict {
		t.Fatalf("second approve want 409 got %d", code)
	}

	var student models.User
	if err := env.db.First(&student, studentID).Error; err != nil {
		t.Fatalf("load student failed: %v", err)
	}
	if !student.IsLender {
		t.Fatalf("approved student should be a lender")
	}
}
