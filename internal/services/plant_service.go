// internal/services/plant_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

type PlantService struct {
	db    *gorm.DB
	guard *DeleteGuard
}

type CreatePlantRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
}

type UpdatePlantRequest struct {
	Code        *string `json:"code,omitempty" validate:"omitempty,max=50"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

func NewPlantService(db *gorm.DB) *PlantService {
	return &PlantService{db: db, guard: NewDeleteGuard(db)}
}

func (s *PlantService) ListPlants() ([]models.Plant, error) {
	var plants []models.Plant
	if err := s.db.Preload("Areas").Order("code ASC").Find(&plants).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch plants: %w", err)
	}
	return plants, nil
}

func (s *PlantService) GetPlant(id uint) (*models.Plant, error) {
	var plant models.Plant
	if err := s.db.Preload("Areas").First(&plant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Plant not found")
		}
		return nil, apperrors.Internal("Error fetching plant", err)
	}
	return &plant, nil
}

func (s *PlantService) CreatePlant(req *CreatePlantRequest) (*models.Plant, error) {
	var count int64
	if err := s.db.Model(&models.Plant{}).Where("code = ?", req.Code).Count(&count).Error; err != nil {
		return nil, apperrors.Internal("Error checking plant code", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("Plant code already exists")
	}

	plant := &models.Plant{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.db.Create(plant).Error; err != nil {
		return nil, apperrors.Internal("Error creating plant", err)
	}
	return plant, nil
}

func (s *PlantService) UpdatePlant(id uint, req *UpdatePlantRequest) (*models.Plant, error) {
	var plant models.Plant
	if err := s.db.First(&plant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Plant not found")
		}
		return nil, apperrors.Internal("Error fetching plant", err)
	}

	updates := make(map[string]interface{})
	if req.Code != nil && *req.Code != plant.Code {
		var count int64
		if err := s.db.Model(&models.Plant{}).Where("code = ? AND id <> ?", *req.Code, id).Count(&count).Error; err != nil {
			return nil, apperrors.Internal("Error checking plant code", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("Plant code already exists")
		}
		updates["code"] = *req.Code
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&plant).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal("Error updating plant", err)
		}
	}

	s.db.Preload("Areas").First(&plant, id)
	return &plant, nil
}

func (s *PlantService) DeletePlant(id uint) error {
	var plant models.Plant
	if err := s.db.First(&plant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Plant not found")
		}
		return apperrors.Internal("Error fetching plant", err)
	}

	result, err := s.guard.CanDelete(GuardedPlant, id)
	if err != nil {
		return apperrors.Internal("Error checking plant dependents", err)
	}
	if !result.Allowed {
		return apperrors.Conflict("%s", result.BlockedMessage(GuardedPlant))
	}

	if err := s.db.Delete(&plant).Error; err != nil {
		return apperrors.Internal("Error deleting plant", err)
	}
	return nil
}
