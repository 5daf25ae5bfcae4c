package main

import (
	"strings"

	"github.com/campus-rent/internal/app"
	"github.com/campus-rent/internal/config"
	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/logger"
	"github.com/campus-rent/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

type seedProduct struct {
	Title    string
	Category string
	Price    string
	Original string
}

var demoProducts = []seedProduct{
	{Title: "27 寸显示器", Category: constants.CategoryElectronics, Price: "12.50", Original: "20.00"},
	{Title: "高等数学教材（上下册）", Category: constants.CategoryBooks, Price: "3.00"},
	{Title: "折叠书桌", Category: constants.CategoryFurniture, Price: "8.00", Original: "10.00"},
	{Title: "迷你冰箱", Category: constants.CategoryElectronics, Price: "15.00"},
	{Title: "台灯", Category: constants.CategoryOther, Price: "2.50"},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if strings.TrimSpace(cfg.Bootstrap.CollegeDomain) == "" {
		cfg.Bootstrap.CollegeName = "Demo University"
		cfg.Bootstrap.CollegeDomain = "demo.edu"
	}
	if err := app.PrepareDatabase(cfg); err != nil {
		stdLog.Fatalf("Failed to prepare database: %v", err)
	}

	college, err := models.EnsureCollege(cfg.Bootstrap.CollegeName, cfg.Bootstrap.CollegeDomain)
	if err != nil || college == nil {
		stdLog.Fatalf("Failed to load college: %v", err)
	}

	lender, err := ensureUser("lender@"+college.EmailDomain, "Demo Lender", college.ID, true)
	if err != nil {
		stdLog.Fatalf("Failed to create lender: %v", err)
	}
	if _, err := ensureUser("student@"+college.EmailDomain, "Demo Student", college.ID, false); err != nil {
		stdLog.Fatalf("Failed to create student: %v", err)
	}

	for _, item := range demoProducts {
		var existing models.Product
		if err := models.DB.Where("owner_id = ? AND title = ?", lender.ID, item.Title).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", item.Title)
			continue
		}
		price, err := models.NewMoneyFromString(item.Price)
		if err != nil {
			stdLog.Fatalf("Invalid price for %s: %v", item.Title, err)
		}
		product := models.Product{
			Title:             item.Title,
			Category:          item.Category,
			BasePricePerMonth: price,
			OwnerID:           lender.ID,
			CollegeID:         college.ID,
			IsActive:          true,
		}
		if item.Original != "" {
			original, err := models.NewMoneyFromString(item.Original)
			if err != nil {
				stdLog.Fatalf("Invalid original price for %s: %v", item.Title, err)
			}
			product.OriginalPricePerMonth = &original
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Title, err)
			continue
		}
		stdLog.Printf("Created product: %s", item.Title)
	}

	logger.Infow("seed_completed",
		"college_id", college.ID,
		"lender_id", lender.ID,
		"product_count", len(demoProducts),
	)
}

func ensureUser(email, displayName string, collegeID uint, isLender bool) (*models.User, error) {
	var user models.User
	if err := models.DB.Where("email = ?", email).First(&user).Error; err == nil {
		return &user, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		CollegeID:    collegeID,
		Role:         constants.UserRoleStudent,
		IsLender:     isLender,
		Status:       constants.UserStatusActive,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
