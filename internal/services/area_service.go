// internal/services/area_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/models"
)

type AreaService struct {
	db    *gorm.DB
	guard *DeleteGuard
}

type CreateAreaRequest struct {
	PlantID     uint   `json:"plant_id" validate:"required"`
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
}

type UpdateAreaRequest struct {
	PlantID     *uint   `json:"plant_id,omitempty"`
	Code        *string `json:"code,omitempty" validate:"omitempty,max=50"`
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

func NewAreaService(db *gorm.DB) *AreaService {
	return &AreaService{db: db, guard: NewDeleteGuard(db)}
}

func (s *AreaService) ListAreas(plantID *uint) ([]models.Area, error) {
	query := s.db.Preload("Plant").Order("code ASC")
	if plantID != nil {
		query = query.Where("plant_id = ?", *plantID)
	}

	var areas []models.Area
	if err := query.Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch areas: %w", err)
	}
	return areas, nil
}

func (s *AreaService) GetArea(id uint) (*models.Area, error) {
	var area models.Area
	if err := s.db.Preload("Plant").First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Area not found")
		}
		return nil, apperrors.Internal("Error fetching area", err)
	}
	return &area, nil
}

func (s *AreaService) CreateArea(req *CreateAreaRequest) (*models.Area, error) {
	var plant models.Plant
	if err := s.db.First(&plant, req.PlantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Plant not found")
		}
		return nil, apperrors.Internal("Error fetching plant", err)
	}

	var count int64
	if err := s.db.Model(&models.Area{}).Where("code = ?", req.Code).Count(&count).Error; err != nil {
		return nil, apperrors.Internal("Error checking area code", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("Area code already exists")
	}

	area := &models.Area{
		PlantID:     req.PlantID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.db.Create(area).Error; err != nil {
		return nil, apperrors.Internal("Error creating area", err)
	}

	s.db.Preload("Plant").First(area, area.ID)
	return area, nil
}

func (s *AreaService) UpdateArea(id uint, req *UpdateAreaRequest) (*models.Area, error) {
	var area models.Area
	if err := s.db.First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Area not found")
		}
		return nil, apperrors.Internal("Error fetching area", err)
	}

	updates := make(map[string]interface{})
	if req.PlantID != nil && *req.PlantID != area.PlantID {
		var plant models.Plant
		if err := s.db.First(&plant, *req.PlantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("Plant not found")
			}
			return nil, apperrors.Internal("Error fetching plant", err)
		}
		updates["plant_id"] = *req.PlantID
	}
	if req.Code != nil && *req.Code != area.Code {
		var count int64
		if err := s.db.Model(&models.Area{}).Where("code = ? AND id <> ?", *req.Code, id).Count(&count).Error; err != nil {
			return nil, apperrors.Internal("Error checking area code", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("Area code already exists")
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
		if err := s.db.Model(&area).Updates(updates).Error; err != nil {
			return nil, apperrors.Internal("Error updating area", err)
		}
	}

	s.db.Preload("Plant").First(&area, id)
	return &area, nil
}

func (s *AreaService) DeleteArea(id uint) error {
	var area models.Area
	if err := s.db.First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Area not found")
		}
		return apperrors.Internal("Error fetching area", err)
	}

	result, err := s.guard.CanDelete(GuardedArea, id)
	if err != nil {
		return apperrors.Internal("Error checking area dependents", err)
	}
	if !result.Allowed {
		return apperrors.Conflict("%s", result.BlockedMessage(GuardedArea))
	}

	if err := s.db.Delete(&area).Error; err != nil {
		return apperrors.Internal("Error deleting area", err)
	}
	return nil
}
