// internal/models/asset.go
package models

import "time"

// Asset is a tracked piece of equipment. Deleting an asset cascades to its
// general info, components and attachments; reference entities above it
// (area, sub-category) are delete-guarded instead.
type Asset struct {
	ID            uint        `json:"id" gorm:"primaryKey"`
	AssetCode     string      `json:"asset_code" gorm:"size:50;uniqueIndex;not null"`
	Name          string      `json:"name" gorm:"size:255;not null"`
	Description   string      `json:"description" gorm:"type:text"`
	Status        AssetStatus `json:"status" gorm:"size:20;not null;default:active"`
	SubCategoryID uint        `json:"sub_category_id" gorm:"not null;index"`
	AreaID        *uint       `json:"area_id" gorm:"index"`
	TeamID        *string     `json:"team_id" gorm:"size:255;index"` // department name
	CreatedBy     *uint       `json:"created_by"`
	ImageURL      string      `json:"image_url" gorm:"size:500"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	SubCategory    *AssetSubCategory    `json:"sub_category,omitempty" gorm:"foreignKey:SubCategoryID"`
	Area           *Area                `json:"area,omitempty" gorm:"foreignKey:AreaID"`
	Department     *Department          `json:"department,omitempty" gorm:"foreignKey:TeamID;references:Name"`
	Creator        *User                `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	GeneralInfo    *AssetGeneralInfo    `json:"general_info,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Components     []AssetComponent     `json:"components,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Specifications []AssetSpecification `json:"specifications,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	Attachments    []AssetAttachment    `json:"attachments,omitempty" gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
}

// AssetGeneralInfo holds extended technical and warranty metadata, exactly one
// row per asset. The row is always created with the asset even when all fields
// are empty, so reads never need to handle its absence.
type AssetGeneralInfo struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	AssetID              uint       `json:"asset_id" gorm:"uniqueIndex;not null"`
	ManufactureYear      *int       `json:"manufacture_year"`
	Manufacturer         *string    `json:"manufacturer" gorm:"size:255"`
	CountryOfOrigin      *string    `json:"country_of_origin" gorm:"size:255"`
	Model                *string    `json:"model" gorm:"size:255"`
	SerialNumber         *string    `json:"serial_number" gorm:"size:100"`
	WarrantyPeriodMonths *int       `json:"warranty_period_months"`
	WarrantyExpiryDate   *time.Time `json:"warranty_expiry_date"`
	Supplier             *string    `json:"supplier" gorm:"size:255"`
	Description          *string    `json:"description" gorm:"type:text"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// AssetComponent is a named sub-part of an asset. Component codes are unique
// per asset, not globally.
type AssetComponent struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	AssetID       uint      `json:"asset_id" gorm:"not null;uniqueIndex:idx_asset_component,priority:1"`
	ComponentName string    `json:"component_name" gorm:"size:255;not null;index"`
	ComponentCode *string   `json:"component_code" gorm:"size:100;uniqueIndex:idx_asset_component,priority:2"`
	Specification *string   `json:"specification" gorm:"type:text"`
	Quantity      int       `json:"quantity" gorm:"not null;default:1;check:quantity >= 0"`
	Unit          *string   `json:"unit" gorm:"size:50"`
	Remarks       *string   `json:"remarks" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AssetAttachment is an uploaded file linked to an asset; the binary lives in
// object storage, only metadata is kept here.
type AssetAttachment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AssetID     uint      `json:"asset_id" gorm:"not null;index"`
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	FilePath    string    `json:"file_path" gorm:"size:500;not null"`
	FileType    string    `json:"file_type" gorm:"size:100"`
	FileSize    int64     `json:"file_size"`
	Description string    `json:"description" gorm:"type:text"`
	UploadedBy  *uint     `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`

	Uploader *User `json:"uploader,omitempty" gorm:"foreignKey:UploadedBy"`
}
