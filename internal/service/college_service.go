package service

import (
	"github.com/campus-rent/internal/models"
	"github.com/campus-rent/internal/repository"
)

// CollegeService 学校服务
type CollegeService struct {
	collegeRepo repository.CollegeRepository
}

// NewCollegeService 创建学校服务
func NewCollegeService(collegeRepo repository.CollegeRepository) *CollegeService {
	return &CollegeService{collegeRepo: collegeRepo}
}

// ListActive 列出开放注册的学校
func (s *CollegeService) ListActive() ([]models.College, error) {
	return s.collegeRepo.ListActive()
}
