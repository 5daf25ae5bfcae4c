package models

import (
	"strings"

	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// EnsureCollege 按邮箱后缀确保学校存在
func EnsureCollege(name, domain string) (*College, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return nil, nil
	}
	var college College
	err := DB.Where("email_domain = ?", domain).
		Attrs(College{Name: strings.TrimSpace(name), IsActive: true}).
		FirstOrCreate(&college).Error
	if err != nil {
		return nil, err
	}
	return &college, nil
}

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(email, password string, collegeID uint) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", constants.UserRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaultPassword := password == ""
	if defaultPassword {
		password = "admin12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "admin",
		CollegeID:    collegeID,
		Role:         constants.UserRoleAdmin,
		Status:       constants.UserStatusActive,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if defaultPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return nil
}
