// internal/services/specification_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/database"
	"github.com/dkpharma/asset-registry/internal/models"
)

type SpecificationService struct {
	db    *gorm.DB
	guard *DeleteGuard
}

type CreateSpecCategoryRequest struct {
	SubCategoryID uint                `json:"sub_category_id" validate:"required"`
	SpecName      string              `json:"spec_name" validate:"required,max=255"`
	SpecCode      *string             `json:"spec_code,omitempty" validate:"omitempty,max=50"`
	Unit          string              `json:"unit,omitempty" validate:"omitempty,max=50"`
	DataType      models.SpecDataType `json:"data_type,omitempty"`
	Options       *string             `json:"options,omitempty"`
	MinValue      *float64            `json:"min_value,omitempty"`
	MaxValue      *float64            `json:"max_value,omitempty"`
	IsRequired    *bool               `json:"is_required,omitempty"`
	DisplayOrder  *int                `json:"display_order,omitempty"`
	Description   string              `json:"description,omitempty"`
	Status        models.AssetStatus  `json:"status,omitempty"`
}

type UpdateSpecCategoryRequest struct {
	SubCategoryID *uint                `json:"sub_category_id,omitempty"`
	SpecName      *string              `json:"spec_name,omitempty" validate:"omitempty,max=255"`
	SpecCode      *string              `json:"spec_code,omitempty" validate:"omitempty,max=50"`
	Unit          *string              `json:"unit,omitempty" validate:"omitempty,max=50"`
	DataType      *models.SpecDataType `json:"data_type,omitempty"`
	Options       *string              `json:"options,omitempty"`
	MinValue      *float64             `json:"min_value,omitempty"`
	MaxValue      *float64             `json:"max_value,omitempty"`
	IsRequired    *bool                `json:"is_required,omitempty"`
	DisplayOrder  *int                 `json:"display_order,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Status        *models.AssetStatus  `json:"status,omitempty"`
}

// ReorderEntry is one element of a bulk display-order update.
type ReorderEntry struct {
	ID           uint `json:"id" validate:"required"`
	DisplayOrder int  `json:"display_order"`
}

func NewSpecificationService(db *gorm.DB) *SpecificationService {
	return &SpecificationService{db: db, guard: NewDeleteGuard(db)}
}

// validateOptions enforces that "select" specs carry a JSON-parseable option
// list.
func validateOptions(dataType models.SpecDataType, options *string) error {
	if dataType != models.SpecDataTypeSelect || options == nil {
		return nil
	}
	var parsed interface{}
	if err := json.Unmarshal([]byte(*options), &parsed); err != nil {
		return apperrors.Validation("Invalid JSON format for options")
	}
	return nil
}

func (s *SpecificationService) ListSpecCategories(subCategoryID *uint, status *models.AssetStatus) ([]models.SpecificationCategory, error) {
	query := s.db.Preload("SubCategory.Category").Preload("Creator").Preload("Updater").
		Order("sub_category_id ASC").Order("display_order ASC").Order("spec_name ASC")
	if subCategoryID != nil {
		query = query.Where("sub_category_id = ?", *subCategoryID)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var specs []models.SpecificationCategory
	if err := query.Find(&specs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch specification categories: %w", err)
	}
	return specs, nil
}

func (s *SpecificationService) GetSpecCategory(id uint) (*models.SpecificationCategory, error) {
	var spec models.SpecificationCategory
	if err := s.db.Preload("SubCategory.Category").Preload("Creator").Preload("Updater").
		First(&spec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Specification category not found")
		}
		return nil, apperrors.Internal("Error fetching specification category", err)
	}
	return &spec, nil
}

func (s *SpecificationService) CreateSpecCategory(req *CreateSpecCategoryRequest, createdBy *uint) (*models.SpecificationCategory, error) {
	var subCategory models.AssetSubCategory
	if err := s.db.First(&subCategory, req.SubCategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Sub category not found")
		}
		return nil, apperrors.Internal("Error fetching sub category", err)
	}

	dataType := req.DataType
	if dataType == "" {
		dataType = models.SpecDataTypeText
	}
	if !dataType.Valid() {
		return nil, apperrors.Validation("Invalid data type: %s", dataType)
	}

	if err := validateOptions(dataType, req.Options); err != nil {
		return nil, err
	}

	if req.SpecCode != nil {
		var count int64
		if err := s.db.Model(&models.SpecificationCategory{}).
			Where("sub_category_id = ? AND spec_code = ?", req.SubCategoryID, *req.SpecCode).
			Count(&count).Error; err != nil {
			return nil, apperrors.Internal("Error checking specification code", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("Specification code already exists in this sub category")
		}
	}

	status := req.Status
	if status == "" {
		status = models.AssetStatusActive
	}
	if !status.Valid() {
		return nil, apperrors.Validation("Invalid status: %s", status)
	}

	// Unordered specs land at the end of the list.
	displayOrder := 0
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	} else {
		var maxOrder *int
		s.db.Model(&models.SpecificationCategory{}).
			Where("sub_category_id = ?", req.SubCategoryID).
			Select("MAX(display_order)").Scan(&maxOrder)
		if maxOrder != nil {
			displayOrder = *maxOrder + 1
		} else {
			displayOrder = 1
		}
	}

	isRequired := false
	if req.IsRequired != nil {
		isRequired = *req.IsRequired
	}

	spec := &models.SpecificationCategory{
		SubCategoryID: req.SubCategoryID,
		SpecName:      req.SpecName,
		SpecCode:      req.SpecCode,
		Unit:          req.Unit,
		DataType:      dataType,
		Options:       req.Options,
		MinValue:      req.MinValue,
		MaxValue:      req.MaxValue,
		IsRequired:    isRequired,
		DisplayOrder:  displayOrder,
		Description:   req.Description,
		Status:        status,
		CreatedBy:     createdBy,
	}

	if err := s.db.Create(spec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Specification code already exists in this sub category")
		}
		return nil, apperrors.Internal("Error creating specification category", err)
	}

	s.db.Preload("SubCategory.Category").Preload("Creator").First(spec, spec.ID)
	return spec, nil
}

func (s *SpecificationService) UpdateSpecCategory(id uint, req *UpdateSpecCategoryRequest, updatedBy *uint) (*models.SpecificationCategory, error) {
	var spec models.SpecificationCategory
	if err := s.db.First(&spec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Specification category not found")
		}
		return nil, apperrors.Internal("Error fetching specification category", err)
	}

	targetSubCategory := spec.SubCategoryID
	if req.SubCategoryID != nil && *req.SubCategoryID != spec.SubCategoryID {
		var subCategory models.AssetSubCategory
		if err := s.db.First(&subCategory, *req.SubCategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("Sub category not found")
			}
			return nil, apperrors.Internal("Error fetching sub category", err)
		}
		targetSubCategory = *req.SubCategoryID
	}

	if req.DataType != nil && !req.DataType.Valid() {
		return nil, apperrors.Validation("Invalid data type: %s", *req.DataType)
	}
	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.Validation("Invalid status: %s", *req.Status)
	}

	effectiveDataType := spec.DataType
	if req.DataType != nil {
		effectiveDataType = *req.DataType
	}
	effectiveOptions := spec.Options
	if req.Options != nil {
		effectiveOptions = req.Options
	}
	if err := validateOptions(effectiveDataType, effectiveOptions); err != nil {
		return nil, err
	}

	if req.SpecCode != nil {
		var count int64
		if err := s.db.Model(&models.SpecificationCategory{}).
			Where("sub_category_id = ? AND spec_code = ? AND id <> ?", targetSubCategory, *req.SpecCode, id).
			Count(&count).Error; err != nil {
			return nil, apperrors.Internal("Error checking specification code", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("Specification code already exists in this sub category")
		}
	}

	updates := map[string]interface{}{"updated_by": updatedBy}
	if req.SubCategoryID != nil {
		updates["sub_category_id"] = *req.SubCategoryID
	}
	if req.SpecName != nil {
		updates["spec_name"] = *req.SpecName
	}
	if req.SpecCode != nil {
		updates["spec_code"] = *req.SpecCode
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.DataType != nil {
		updates["data_type"] = *req.DataType
	}
	if req.Options != nil {
		updates["options"] = *req.Options
	}
	if req.MinValue != nil {
		updates["min_value"] = *req.MinValue
	}
	if req.MaxValue != nil {
		updates["max_value"] = *req.MaxValue
	}
	if req.IsRequired != nil {
		updates["is_required"] = *req.IsRequired
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if err := s.db.Model(&spec).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Specification code already exists in this sub category")
		}
		return nil, apperrors.Internal("Error updating specification category", err)
	}

	s.db.Preload("SubCategory.Category").Preload("Creator").Preload("Updater").First(&spec, id)
	return &spec, nil
}

func (s *SpecificationService) DeleteSpecCategory(id uint) error {
	var spec models.SpecificationCategory
	if err := s.db.First(&spec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Specification category not found")
		}
		return apperrors.Internal("Error fetching specification category", err)
	}

	result, err := s.guard.CanDelete(GuardedSpecCategory, id)
	if err != nil {
		return apperrors.Internal("Error checking specification dependents", err)
	}
	if !result.Allowed {
		return apperrors.Conflict("Cannot delete specification category. It has %d asset specification(s) using it.", result.Blocking)
	}

	if err := s.db.Delete(&spec).Error; err != nil {
		return apperrors.Internal("Error deleting specification category", err)
	}
	return nil
}

// Reorder bulk-updates display order. Entries whose id does not belong to the
// given sub-category are ignored, not rejected.
func (s *SpecificationService) Reorder(subCategoryID uint, orders []ReorderEntry, updatedBy *uint) ([]models.SpecificationCategory, error) {
	var subCategory models.AssetSubCategory
	if err := s.db.First(&subCategory, subCategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Sub category not found")
		}
		return nil, apperrors.Internal("Error fetching sub category", err)
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		for _, order := range orders {
			if order.ID == 0 {
				continue
			}
			if err := tx.Model(&models.SpecificationCategory{}).
				Where("id = ? AND sub_category_id = ?", order.ID, subCategoryID).
				Updates(map[string]interface{}{
					"display_order": order.DisplayOrder,
					"updated_by":    updatedBy,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Internal("Error reordering specification categories", err)
	}

	return s.ListSpecCategories(&subCategoryID, nil)
}
