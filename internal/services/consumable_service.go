// internal/services/consumable_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

type ConsumableService struct {
	db *gorm.DB
}

type CreateConsumableCategoryRequest struct {
	Type        models.ConsumableType `json:"type,omitempty"`
	Code        string                `json:"code" validate:"required,max=50"`
	Name        string                `json:"name" validate:"required,max=255"`
	Description string                `json:"description,omitempty"`
	IsActive    *bool                 `json:"is_active,omitempty"`
}

type UpdateConsumableCategoryRequest struct {
	Type        *models.ConsumableType `json:"type,omitempty"`
	Code        *string                `json:"code,omitempty" validate:"omitempty,max=50"`
	Name        *string                `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string                `json:"description,omitempty"`
	IsActive    *bool                  `json:"is_active,omitempty"`
}

func NewConsumableService(db *gorm.DB) *ConsumableService {
	return &ConsumableService{db: db}
}

func (s *ConsumableService) ListConsumableCategories(consumableType *models.ConsumableType, activeOnly bool) ([]models.ConsumableCategory, error) {
	query := s.db.Preload("Creator").Preload("Updater").Order("code ASC")
	if consumableType != nil {
		query = query.Where("type = ?", *consumableType)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.ConsumableCategory
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch consumable categories: %w", err)
	}
	return categories, nil
}

func (s *ConsumableService) GetConsumableCategory(id uint) (*models.ConsumableCategory, error) {
	var category models.ConsumableCategory
	if err := s.db.Preload("Creator").Preload("Updater").First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Consumable category not found")
		}
		return nil, apperrors.Internal("Error fetching consumable category", err)
	}
	return &category, nil
}

func (s *ConsumableService) CreateConsumableCategory(req *CreateConsumableCategoryRequest, createdBy *uint) (*models.ConsumableCategory, error) {
	consumableType := req.Type
	if consumableType == "" {
		consumableType = models.ConsumableTypeConsumable
	}
	if !consumableType.Valid() {
		return nil, apperrors.Validation("Invalid consumable type: %s", consumableType)
	}

	var count int64
	if err := s.db.Model(&models.ConsumableCategory{}).Where("code = ?", req.Code).Count(&count).Error; err != nil {
		return nil, apperrors.Internal("Error checking consumable category code", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("Consumable category code already exists")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	category := &models.ConsumableCategory{
		Type:        consumableType,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
		CreatedBy:   createdBy,
	}

	if err := s.db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Consumable category code already exists")
		}
		return nil, apperrors.Internal("Error creating consumable category", err)
	}

	s.db.Preload("Creator").First(category, category.ID)
	return category, nil
}

func (s *ConsumableService) UpdateConsumableCategory(id uint, req *UpdateConsumableCategoryRequest, updatedBy *uint) (*models.ConsumableCategory, error) {
	var category models.ConsumableCategory
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Consumable category not found")
		}
		return nil, apperrors.Internal("Error fetching consumable category", err)
	}

	if req.Type != nil && !req.Type.Valid() {
		return nil, apperrors.Validation("Invalid consumable type: %s", *req.Type)
	}

	if req.Code != nil && *req.Code != category.Code {
		var count int64
		if err := s.db.Model(&models.ConsumableCategory{}).
			Where("code = ? AND id <> ?", *req.Code, id).Count(&count).Error; err != nil {
			return nil, apperrors.Internal("Error checking consumable category code", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("Consumable category code already exists")
		}
	}

	updates := map[string]interface{}{"updated_by": updatedBy}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Code != nil {
		updates["code"] = *req.Code
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := s.db.Model(&category).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Consumable category code already exists")
		}
		return nil, apperrors.Internal("Error updating consumable category", err)
	}

	s.db.Preload("Creator").Preload("Updater").First(&category, id)
	return &category, nil
}

// DeleteConsumableCategory removes the row outright; nothing references
// consumable categories yet.
func (s *ConsumableService) DeleteConsumableCategory(id uint) error {
	var category models.ConsumableCategory
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Consumable category not found")
		}
		return apperrors.Internal("Error fetching consumable category", err)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return apperrors.Internal("Error deleting consumable category", err)
	}
	return nil
}
