package service

import (
	"strings"
	"time"

	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"

	"gorm.io/gorm"
)

// AddressInput 地址输入
type AddressInput struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// AddressPatch 地址部分更新，nil 字段保持不变
type AddressPatch struct {
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

// AddressService 地址簿服务
type AddressService struct {
	addressRepo repository.AddressRepository
}

// NewAddressService 创建地址簿服务
func NewAddressService(addressRepo repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// List 获取用户地址
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.addressRepo.ListByUser(userID)
}

// Create 新增地址；用户的第一个地址自动成为默认地址
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	address, err := buildAddress(userID, input)
	if err != nil {
		return nil, err
	}
	err = s.addressRepo.Transaction(func(tx *gorm.DB) error {
		return createAddressTx(s.addressRepo.WithTx(tx), address, input.IsDefault)
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// SetDefault 设为默认地址
func (s *AddressService) SetDefault(userID, addressID uint) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	var result *models.Address
	err := s.addressRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.addressRepo.WithTx(tx)
		if err := repo.LockByUser(userID); err != nil {
			return err
		}
		address, err := repo.GetByIDAndUser(addressID, userID)
		if err != nil {
			return err
		}
		if address == nil {
			return ErrAddressNotFound
		}
		if err := repo.ClearDefault(userID); err != nil {
			return err
		}
		if err := repo.SetDefault(address.ID); err != nil {
			return err
		}
		address.IsDefault = true
		result = address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update 更新地址字段
func (s *AddressService) Update(userID, addressID uint, patch AddressPatch) (*models.Address, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	updates := map[string]interface{}{}
	required := []struct {
		field string
		value *string
		dest  *string
	}{
		{"line1", patch.Line1, &address.Line1},
		{"city", patch.City, &address.City},
		{"state", patch.State, &address.State},
		{"postal_code", patch.PostalCode, &address.PostalCode},
		{"country", patch.Country, &address.Country},
	}
	for _, f := range required {
		if f.value == nil {
			continue
		}
		trimmed := strings.TrimSpace(*f.value)
		if trimmed == "" {
			return nil, newValidationError(f.field, "is required")
		}
		updates[f.field] = trimmed
		*f.dest = trimmed
	}
	if patch.Line2 != nil {
		address.Line2 = strings.TrimSpace(*patch.Line2)
		updates["line2"] = address.Line2
	}
	if len(updates) == 0 {
		return address, nil
	}
	updates["updated_at"] = time.Now()
	if err := s.addressRepo.Update(address.ID, updates); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除地址
func (s *AddressService) Delete(userID, addressID uint) error {
	if userID == 0 {
		return ErrUnauthorized
	}
	address, err := s.addressRepo.GetByIDAndUser(addressID, userID)
	if err != nil {
		return err
	}
	if address == nil {
		return ErrAddressNotFound
	}
	return s.addressRepo.Delete(address.ID)
}

// createAddressTx 在事务内创建地址并维护默认标记
func createAddressTx(repo repository.AddressRepository, address *models.Address, makeDefault bool) error {
	if err := repo.LockByUser(address.UserID); err != nil {
		return err
	}
	count, err := repo.CountByUser(address.UserID)
	if err != nil {
		return err
	}
	address.IsDefault = makeDefault || count == 0
	if address.IsDefault && count > 0 {
		if err := repo.ClearDefault(address.UserID); err != nil {
			return err
		}
	}
	return repo.Create(address)
}

func buildAddress(userID uint, input AddressInput) (*models.Address, error) {
	address := &models.Address{
		UserID:     userID,
		Line1:      strings.TrimSpace(input.Line1),
		Line2:      strings.TrimSpace(input.Line2),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    strings.TrimSpace(input.Country),
	}
	switch {
	case address.Line1 == "":
		return nil, newValidationError("line1", "is required")
	case address.City == "":
		return nil, newValidationError("city", "is required")
	case address.State == "":
		return nil, newValidationError("state", "is required")
	case address.PostalCode == "":
		return nil, newValidationError("postal_code", "is required")
	case address.Country == "":
		return nil, newValidationError("country", "is required")
	}
	return address, nil
}
