// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

const subCategorySequenceWidth = 4

type CategoryService struct {
	db    *gorm.DB
	guard *DeleteGuard
}

type CreateCategoryRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
}

type UpdateCategoryRequest struct {
	Code        *string `json:"code,omitempty" validate:"omitempty,max=50"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

type CreateSubCategoryRequest struct {
	CategoryID  uint   `json:"category_id" validate:"required"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
}

type UpdateSubCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db, guard: NewDeleteGuard(db)}
}

// NextSubCategoryCode derives the next generated code for a category prefix:
// the highest numeric suffix among existing codes sharing the prefix, plus one,
// zero-padded to four digits. Concurrent callers can compute the same code;
// the unique index on sub-category codes rejects the loser.
func (s *CategoryService) NextSubCategoryCode(categoryCode string) (string, error) {
	var codes []string
	err := s.db.Model(&models.AssetSubCategory{}).
		Where("code LIKE ?", categoryCode+"%").
		Pluck("code", &codes).Error
	if err != nil {
		return "", fmt.Errorf("failed to fetch sub category codes: %w", err)
	}

	max := 0
	for _, code := range codes {
		suffix := strings.TrimPrefix(code, categoryCode)
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue // foreign or malformed code sharing the prefix
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s%0*d", categoryCode, subCategorySequenceWidth, max+1), nil
}

// Categories

func (s *CategoryService) ListCategories() ([]models.AssetCategory, error) {
	var categories []models.AssetCategory
	if err := s.db.Preload("SubCategories").Order("code ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch asset categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(id uint) (*models.AssetCategory, error) {
	var category models.AssetCategory
	if err := s.db.Preload("SubCategories").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset category not found")
		}
		return nil, apperrors.Internal("Error fetching asset category", err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.AssetCategory, error) {
	var count int64
	if err := s.db.Model(&models.AssetCategory{}).
		Where("code = ? OR name = ?", req.Code, req.Name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Internal("Error checking category uniqueness", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("Category code or name already exists")
	}

	category := &models.AssetCategory{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Internal("Error creating asset category", err)
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(id uint, req *UpdateCategoryRequest) (*models.AssetCategory, error) {
	var category models.AssetCategory
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset category not found")
		}
		return nil, apperrors.Internal("Error fetching asset category", err)
	}

	updates := make(map[string]interface{})
	if req.Code != nil && *req.Code != category.Code {
		var count int64
		if err := s.db.Model(&models.AssetCategory{}).Where("code = ? AND id <> ?", *req.Code, id).Count(&count).Error; err != nil {
			return nil, apperrors.Internal("Error checking category code", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("Category code already exists")
		}
		updates["code"] = *req.Code
	}
	if req.Name != nil && *req.Name != category.Name {
		var count int64
		if err := s.db.Model(&models.AssetCategory{}).Where("name = ? AND id <> ?", *req.Name, id).Count(&count).Error; err != nil {
			return nil, apperrors.Internal("Error checking category name", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("Category name already exists")
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&category).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal("Error updating asset category", err)
		}
	}

	s.db.Preload("SubCategories").First(&category, id)
	return &category, nil
}

func (s *CategoryService) DeleteCategory(id uint) error {
	var category models.AssetCategory
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Asset category not found")
		}
		return apperrors.Internal("Error fetching asset category", err)
	}

	result, err := s.guard.CanDelete(GuardedCategory, id)
	if err != nil {
		return apperrors.Internal("Error checking category dependents", err)
	}
	if !result.Allowed {
		return apperrors.Conflict("%s", result.BlockedMessage(GuardedCategory))
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return apperrors.Internal("Error deleting asset category", err)
	}
	return nil
}

// Sub-categories

func (s *CategoryService) ListSubCategories(categoryID *uint) ([]models.AssetSubCategory, error) {
	query := s.db.Preload("Category").Order("name ASC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var subCategories []models.AssetSubCategory
	if err := query.Find(&subCategories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch asset sub categories: %w", err)
	}
	return subCategories, nil
}

func (s *CategoryService) GetSubCategory(id uint) (*models.AssetSubCategory, error) {
	var subCategory models.AssetSubCategory
	if err := s.db.Preload("Category").Preload("Assets").First(&subCategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset sub category not found")
		}
		return nil, apperrors.Internal("Error fetching asset sub category", err)
	}
	return &subCategory, nil
}

func (s *CategoryService) CreateSubCategory(req *CreateSubCategoryRequest) (*models.AssetSubCategory, error) {
	var category models.AssetCategory
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, apperrors.Internal("Error fetching category", err)
	}

	code, err := s.NextSubCategoryCode(category.Code)
	if err != nil {
		return nil, apperrors.Internal("Error generating sub category code", err)
	}

	subCategory := &models.AssetSubCategory{
		CategoryID:  req.CategoryID,
		Code:        code,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.db.Create(subCategory).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Sub category code already exists")
		}
		return nil, apperrors.Internal("Error creating asset sub category", err)
	}

	s.db.Preload("Category").First(subCategory, subCategory.ID)
	return subCategory, nil
}

func (s *CategoryService) UpdateSubCategory(id uint, req *UpdateSubCategoryRequest) (*models.AssetSubCategory, error) {
	var subCategory models.AssetSubCategory
	if err := s.db.First(&subCategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset sub category not found")
		}
		return nil, apperrors.Internal("Error fetching asset sub category", err)
	}

	// The generated code is immutable; only name and description are patchable.
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&subCategory).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal("Error updating asset sub category", err)
		}
	}

	s.db.Preload("Category").First(&subCategory, id)
	return &subCategory, nil
}

func (s *CategoryService) DeleteSubCategory(id uint) error {
	var subCategory models.AssetSubCategory
	if err := s.db.First(&subCategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Asset sub category not found")
		}
		return apperrors.Internal("Error fetching asset sub category", err)
	}

	result, err := s.guard.CanDelete(GuardedSubCategory, id)
	if err != nil {
		return apperrors.Internal("Error checking sub category dependents", err)
	}
	if !result.Allowed {
		return apperrors.Conflict("%s", result.BlockedMessage(GuardedSubCategory))
	}

	if err := s.db.Delete(&subCategory).Error; err != nil {
		return apperrors.Internal("Error deleting asset sub category", err)
	}
	return nil
}
