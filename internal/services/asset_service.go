// internal/services/asset_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dkpharma/asset-registry/internal/apperrors"
	"github.com/dkpharma/asset-registry/internal/database"
	"github.com/dkpharma/asset-registry/internal/models"
	"github.com/dkpharma/asset-registry/internal/utils"
)

// AssetService manages the asset aggregate: the asset row plus its general
// info, components and specifications move together in one transaction.
type AssetService struct {
	db    *gorm.DB
	guard *DeleteGuard
}

type GeneralInfoInput struct {
	ManufactureYear      *int       `json:"manufacture_year,omitempty"`
	Manufacturer         *string    `json:"manufacturer,omitempty" validate:"omitempty,max=255"`
	CountryOfOrigin      *string    `json:"country_of_origin,omitempty" validate:"omitempty,max=255"`
	Model                *string    `json:"model,omitempty" validate:"omitempty,max=255"`
	SerialNumber         *string    `json:"serial_number,omitempty" validate:"omitempty,max=100"`
	WarrantyPeriodMonths *int       `json:"warranty_period_months,omitempty"`
	WarrantyExpiryDate   *time.Time `json:"warranty_expiry_date,omitempty"`
	Supplier             *string    `json:"supplier,omitempty" validate:"omitempty,max=255"`
	Description          *string    `json:"description,omitempty"`
}

type ComponentInput struct {
	ComponentName string  `json:"component_name" validate:"required,max=255"`
	ComponentCode *string `json:"component_code,omitempty" validate:"omitempty,max=100"`
	Specification *string `json:"specification,omitempty"`
	Quantity      *int    `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Unit          *string `json:"unit,omitempty" validate:"omitempty,max=50"`
	Remarks       *string `json:"remarks,omitempty"`
}

type SpecValueInput struct {
	SpecCategoryID uint     `json:"spec_category_id" validate:"required"`
	Value          string   `json:"value"`
	NumericValue   *float64 `json:"numeric_value,omitempty"`
}

type CreateAssetRequest struct {
	AssetCode     string             `json:"asset_code" validate:"required,max=50"`
	Name          string             `json:"name" validate:"required,max=255"`
	Description   string             `json:"description,omitempty"`
	Status        models.AssetStatus `json:"status,omitempty"`
	SubCategoryID uint               `json:"sub_category_id" validate:"required"`
	AreaID        *uint              `json:"area_id,omitempty"`
	TeamID        *string            `json:"team_id,omitempty"`
	ImageURL      string             `json:"image_url,omitempty" validate:"omitempty,max=500"`
	GeneralInfo   *GeneralInfoInput  `json:"general_info,omitempty"`
	Components    []ComponentInput   `json:"components,omitempty"`
}

// UpdateAssetRequest patches an asset. Components semantics: nil leaves the
// component list untouched, an empty slice clears it, a non-empty slice
// replaces it.
type UpdateAssetRequest struct {
	AssetCode     *string             `json:"asset_code,omitempty" validate:"omitempty,max=50"`
	Name          *string             `json:"name,omitempty" validate:"omitempty,max=255"`
	Description   *string             `json:"description,omitempty"`
	Status        *models.AssetStatus `json:"status,omitempty"`
	SubCategoryID *uint               `json:"sub_category_id,omitempty"`
	AreaID        *uint               `json:"area_id,omitempty"`
	TeamID        *string             `json:"team_id,omitempty"`
	ImageURL      *string             `json:"image_url,omitempty" validate:"omitempty,max=500"`
	GeneralInfo   *GeneralInfoInput   `json:"general_info,omitempty"`
	Components    *[]ComponentInput   `json:"components,omitempty"`
}

type AssetFilter struct {
	SubCategoryID *uint
	CategoryID    *uint
	AreaID        *uint
	PlantID       *uint
	TeamID        *string
	Status        *models.AssetStatus
	AssetCode     string
	Search        string
}

func NewAssetService(db *gorm.DB) *AssetService {
	return &AssetService{db: db, guard: NewDeleteGuard(db)}
}

func (s *AssetService) preloadAll(db *gorm.DB) *gorm.DB {
	return db.Preload("SubCategory.Category").
		Preload("Area.Plant").
		Preload("Department").
		Preload("Creator").
		Preload("GeneralInfo").
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("component_name ASC")
		}).
		Preload("Specifications.SpecCategory").
		Preload("Attachments.Uploader")
}

func (s *AssetService) ListAssets(filter *AssetFilter, pagination *utils.PaginationParams) ([]models.Asset, int64, error) {
	query := s.db.Model(&models.Asset{})

	if filter != nil {
		if filter.SubCategoryID != nil {
			query = query.Where("sub_category_id = ?", *filter.SubCategoryID)
		}
		if filter.CategoryID != nil {
			query = query.Where("sub_category_id IN (?)",
				s.db.Model(&models.AssetSubCategory{}).Select("id").Where("category_id = ?", *filter.CategoryID))
		}
		if filter.AreaID != nil {
			query = query.Where("area_id = ?", *filter.AreaID)
		}
		if filter.PlantID != nil {
			query = query.Where("area_id IN (?)",
				s.db.Model(&models.Area{}).Select("id").Where("plant_id = ?", *filter.PlantID))
		}
		if filter.TeamID != nil {
			query = query.Where("team_id = ?", *filter.TeamID)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.AssetCode != "" {
			query = query.Where("asset_code = ?", filter.AssetCode)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			query = query.Where("name ILIKE ? OR asset_code ILIKE ? OR description ILIKE ?", like, like, like)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	query = s.preloadAll(query)
	if pagination != nil {
		allowedSort := []string{"asset_code", "name", "status", "created_at", "updated_at"}
		query = utils.ApplySort(query, *pagination, allowedSort)
		query = utils.ApplyPagination(query, *pagination)
	} else {
		query = query.Order("asset_code ASC")
	}

	var assets []models.Asset
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch assets: %w", err)
	}
	return assets, total, nil
}

func (s *AssetService) GetAsset(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.preloadAll(s.db).First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, apperrors.Internal("Error fetching asset", err)
	}
	return &asset, nil
}

func (s *AssetService) GetAssetByCode(assetCode string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.preloadAll(s.db).Where("asset_code = ?", assetCode).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, apperrors.Internal("Error fetching asset", err)
	}
	return &asset, nil
}

func (s *AssetService) validateReferences(subCategoryID *uint, areaID *uint, teamID *string) error {
	if subCategoryID != nil {
		var subCategory models.AssetSubCategory
		if err := s.db.First(&subCategory, *subCategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Sub category not found")
			}
			return apperrors.Internal("Error fetching sub category", err)
		}
	}
	if areaID != nil {
		var area models.Area
		if err := s.db.First(&area, *areaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Area not found")
			}
			return apperrors.Internal("Error fetching area", err)
		}
	}
	if teamID != nil {
		var department models.Department
		if err := s.db.First(&department, "name = ?", *teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Department not found")
			}
			return apperrors.Internal("Error fetching department", err)
		}
	}
	return nil
}

// buildComponents filters out entries with a blank name and applies the
// quantity default of 1.
func buildComponents(assetID uint, inputs []ComponentInput) []models.AssetComponent {
	components := make([]models.AssetComponent, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.ComponentName)
		if name == "" {
			continue
		}
		quantity := 1
		if input.Quantity != nil {
			quantity = *input.Quantity
		}
		components = append(components, models.AssetComponent{
			AssetID:       assetID,
			ComponentName: name,
			ComponentCode: input.ComponentCode,
			Specification: input.Specification,
			Quantity:      quantity,
			Unit:          input.Unit,
			Remarks:       input.Remarks,
		})
	}
	return components
}

// CreateAsset writes the asset row, its general info and its components in a
// single transaction. The general info row is created even when the request
// carries none.
func (s *AssetService) CreateAsset(req *CreateAssetRequest, createdBy *uint) (*models.Asset, error) {
	status := req.Status
	if status == "" {
		status = models.AssetStatusActive
	}
	if !status.Valid() {
		return nil, apperrors.Validation("Invalid status: %s", status)
	}

	if err := s.validateReferences(&req.SubCategoryID, req.AreaID, req.TeamID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Asset{}).Where("asset_code = ?", req.AssetCode).Count(&count).Error; err != nil {
		return nil, apperrors.Internal("Error checking asset code", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("Asset code already exists")
	}

	asset := &models.Asset{
		AssetCode:     req.AssetCode,
		Name:          req.Name,
		Description:   req.Description,
		Status:        status,
		SubCategoryID: req.SubCategoryID,
		AreaID:        req.AreaID,
		TeamID:        req.TeamID,
		CreatedBy:     createdBy,
		ImageURL:      req.ImageURL,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(asset).Error; err != nil {
			return err
		}

		generalInfo := models.AssetGeneralInfo{AssetID: asset.ID}
		if req.GeneralInfo != nil {
			applyGeneralInfo(&generalInfo, req.GeneralInfo)
		}
		if err := tx.Create(&generalInfo).Error; err != nil {
			return err
		}

		components := buildComponents(asset.ID, req.Components)
		if len(components) > 0 {
			if err := tx.Create(&components).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Asset code or component code already exists")
		}
		return nil, apperrors.Internal("Error creating asset", err)
	}

	return s.GetAsset(asset.ID)
}

func applyGeneralInfo(info *models.AssetGeneralInfo, input *GeneralInfoInput) {
	info.ManufactureYear = input.ManufactureYear
	info.Manufacturer = input.Manufacturer
	info.CountryOfOrigin = input.CountryOfOrigin
	info.Model = input.Model
	info.SerialNumber = input.SerialNumber
	info.WarrantyPeriodMonths = input.WarrantyPeriodMonths
	info.WarrantyExpiryDate = input.WarrantyExpiryDate
	info.Supplier = input.Supplier
	info.Description = input.Description
}

// UpdateAsset patches the asset row and, when supplied, upserts general info
// and replaces the component list, all in one transaction.
func (s *AssetService) UpdateAsset(id uint, req *UpdateAssetRequest) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, apperrors.Internal("Error fetching asset", err)
	}

	if req.Status != nil && !req.Status.Valid() {
		return nil, apperrors.Validation("Invalid status: %s", *req.Status)
	}
	if err := s.validateReferences(req.SubCategoryID, req.AreaID, req.TeamID); err != nil {
		return nil, err
	}

	if req.AssetCode != nil && *req.AssetCode != asset.AssetCode {
		var count int64
		if err := s.db.Model(&models.Asset{}).
			Where("asset_code = ? AND id <> ?", *req.AssetCode, id).Count(&count).Error; err != nil {
			return nil, apperrors.Internal("Error checking asset code", err)
		}
		if count > 0 {
			return nil, apperrors.Conflict("Asset code already exists")
		}
	}

	updates := map[string]interface{}{}
	if req.AssetCode != nil {
		updates["asset_code"] = *req.AssetCode
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.SubCategoryID != nil {
		updates["sub_category_id"] = *req.SubCategoryID
	}
	if req.AreaID != nil {
		updates["area_id"] = *req.AreaID
	}
	if req.TeamID != nil {
		updates["team_id"] = *req.TeamID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&asset).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.GeneralInfo != nil {
			var info models.AssetGeneralInfo
			err := tx.Where("asset_id = ?", id).First(&info).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				info = models.AssetGeneralInfo{AssetID: id}
				applyGeneralInfo(&info, req.GeneralInfo)
				if err := tx.Create(&info).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			} else {
				applyGeneralInfo(&info, req.GeneralInfo)
				if err := tx.Save(&info).Error; err != nil {
					return err
				}
			}
		}

		if req.Components != nil {
			if err := tx.Where("asset_id = ?", id).Delete(&models.AssetComponent{}).Error; err != nil {
				return err
			}
			components := buildComponents(id, *req.Components)
			if len(components) > 0 {
				if err := tx.Create(&components).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("Asset code or component code already exists")
		}
		return nil, apperrors.Internal("Error updating asset", err)
	}

	return s.GetAsset(id)
}

// DeleteAsset removes the asset and everything it owns.
func (s *AssetService) DeleteAsset(id uint) error {
	var asset models.Asset
	if err := s.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Asset not found")
		}
		return apperrors.Internal("Error fetching asset", err)
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", id).Delete(&models.AssetSpecification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&models.AssetComponent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&models.AssetAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("asset_id = ?", id).Delete(&models.AssetGeneralInfo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&asset).Error
	})
	if err != nil {
		return apperrors.Internal("Error deleting asset", err)
	}
	return nil
}

// SetSpecifications upserts spec values for an asset: one row per
// (asset, spec category), updated in place when it already exists. Every spec
// category must belong to the asset's sub-category.
func (s *AssetService) SetSpecifications(assetID uint, values []SpecValueInput, userID *uint) ([]models.AssetSpecification, error) {
	var asset models.Asset
	if err := s.db.First(&asset, assetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Asset not found")
		}
		return nil, apperrors.Internal("Error fetching asset", err)
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		for _, value := range values {
			var specCategory models.SpecificationCategory
			if err := tx.First(&specCategory, value.SpecCategoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("Specification category %d not found", value.SpecCategoryID)
				}
				return err
			}
			if specCategory.SubCategoryID != asset.SubCategoryID {
				return apperrors.Validation("Specification category %d does not belong to the asset's sub category", value.SpecCategoryID)
			}

			var existing models.AssetSpecification
			err := tx.Where("asset_id = ? AND spec_category_id = ?", assetID, value.SpecCategoryID).
				First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				row := models.AssetSpecification{
					AssetID:        assetID,
					SpecCategoryID: value.SpecCategoryID,
					Value:          value.Value,
					NumericValue:   value.NumericValue,
					CreatedBy:      userID,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			} else {
				if err := tx.Model(&existing).Updates(map[string]interface{}{
					"value":         value.Value,
					"numeric_value": value.NumericValue,
					"updated_by":    userID,
				}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.Internal("Error saving asset specifications", err)
	}

	var specs []models.AssetSpecification
	if err := s.db.Preload("SpecCategory").Where("asset_id = ?", assetID).
		Order("spec_category_id ASC").Find(&specs).Error; err != nil {
		return nil, apperrors.Internal("Error fetching asset specifications", err)
	}
	return specs, nil
}
