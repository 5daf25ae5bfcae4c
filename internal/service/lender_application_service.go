package service

import (
	"context"
	"strings"
	"time"

	"github.com/campus-rent/internal/cache"
	"github.com/campus-rent/internal/constants"
	"github.com/campus-rent/internal/logger"
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"

	"gorm.io/gorm"
)

// LenderApplyInput 出借人申请输入
type LenderApplyInput struct {
	StudentIDNumber string
	IDCardURL       string
	Reason          string
}

// LenderApplicationService 出借人资质审核服务
type LenderApplicationService struct {
	appRepo  repository.LenderApplicationRepository
	userRepo repository.UserRepository
}

// NewLenderApplicationService 创建出借人审核服务
func NewLenderApplicationService(appRepo repository.LenderApplicationRepository, userRepo repository.UserRepository) *LenderApplicationService {
	return &LenderApplicationService{appRepo: appRepo, userRepo: userRepo}
}

// Apply 学生提交出借人申请，同一时间只能有一份待审核申请
func (s *LenderApplicationService) Apply(userID uint, input LenderApplyInput) (*models.LenderApplication, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	if user.IsLender {
		return nil, ErrAlreadyLender
	}
	studentID := strings.TrimSpace(input.StudentIDNumber)
	if studentID == "" {
		return nil, newValidationError("student_id_number", "is required")
	}
	latest, err := s.appRepo.GetLatestByUser(userID)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.Status == constants.LenderApplicationPending {
		return nil, ErrLenderApplicationPending
	}

	app := &models.LenderApplication{
		UserID:          userID,
		StudentIDNumber: studentID,
		IDCardURL:       strings.TrimSpace(input.IDCardURL),
		Reason:          strings.TrimSpace(input.Reason),
		Status:          constants.LenderApplicationPending,
	}
	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

// GetMine 查看自己最近一次申请
func (s *LenderApplicationService) GetMine(userID uint) (*models.LenderApplication, error) {
	app, err := s.appRepo.GetLatestByUser(userID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, ErrLenderApplicationNotFound
	}
	return app, nil
}

// List 管理员查看申请列表
func (s *LenderApplicationService) List(status string, page, pageSize int) ([]models.LenderApplication, int64, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case "", constants.LenderApplicationPending, constants.LenderApplicationApproved, constants.LenderApplicationRejected:
	default:
		return nil, 0, newValidationError("status", "is not supported")
	}
	return s.appRepo.List(repository.LenderApplicationListFilter{Status: status, Page: page, PageSize: pageSize})
}

// Approve 通过申请并授予出借人资格
func (s *LenderApplicationService) Approve(adminID, applicationID uint, note string) (*models.LenderApplication, error) {
	return s.review(adminID, applicationID, constants.LenderApplicationApproved, note)
}

// Reject 驳回申请
func (s *LenderApplicationService) Reject(adminID, applicationID uint, note string) (*models.LenderApplication, error) {
	return s.review(adminID, applicationID, constants.LenderApplicationRejected, note)
}

func (s *LenderApplicationService) review(adminID, applicationID uint, status, note string) (*models.LenderApplication, error) {
	var result *models.LenderApplication
	err := s.appRepo.Transaction(func(tx *gorm.DB) error {
		appRepo := s.appRepo.WithTx(tx)
		app, err := appRepo.GetByID(applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return ErrLenderApplicationNotFound
		}
		if app.Status != constants.LenderApplicationPending {
			return ErrLenderApplicationReviewed
		}
		now := time.Now()
		note = strings.TrimSpace(note)
		affected, err := appRepo.UpdateReview(app.ID, constants.LenderApplicationPending, map[string]interface{}{
			"status":      status,
			"reviewer_id": adminID,
			"review_note": note,
			"reviewed_at": now,
			"updated_at":  now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrLenderApplicationReviewed
		}
		if status == constants.LenderApplicationApproved {
			if err := s.userRepo.WithTx(tx).MarkLender(app.UserID); err != nil {
				return err
			}
		}
		app.Status = status
		app.ReviewerID = &adminID
		app.ReviewNote = note
		app.ReviewedAt = &now
		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	if status == constants.LenderApplicationApproved {
		if err := cache.DelUserAuthState(context.Background(), result.UserID); err != nil {
			logger.Warnw("lender_auth_state_invalidate_failed", "user_id", result.UserID, "error", err)
		}
	}
	logger.Infow("lender_application_reviewed",
		"application_id", result.ID,
		"user_id", result.UserID,
		"status", status,
		"reviewer_id", adminID,
	)
	return result, nil
}
