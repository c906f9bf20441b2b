// internal/services/department_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

// DepartmentService is read-only: departments are written exclusively by the
// identity sync job.
type DepartmentService struct {
	db *gorm.DB
}

func NewDepartmentService(db *gorm.DB) *DepartmentService {
	return &DepartmentService{db: db}
}

func (s *DepartmentService) ListDepartments() ([]models.Department, error) {
	var departments []models.Department
	if err := s.db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch departments: %w", err)
	}
	return departments, nil
}

func (s *DepartmentService) GetDepartment(name string) (*models.Department, error) {
	var department models.Department
	if err := s.db.Preload("Users", func(db *gorm.DB) *gorm.DB {
		return db.Order("employee_code ASC")
	}).First(&department, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Department not found")
		}
		return nil, apperrors.Internal("Error fetching department", err)
	}
	return &department, nil
}
