// internal/models/specification.go
package models

import "time"

// SpecificationCategory is a typed technical-attribute template belonging to a
// sub-category. Assets under the sub-category carry AssetSpecification values
// against these templates.
type SpecificationCategory struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	SubCategoryID uint         `json:"sub_category_id" gorm:"not null;index;uniqueIndex:idx_spec_code_per_sub,priority:1"`
	SpecName      string       `json:"spec_name" gorm:"size:255;not null"`
	SpecCode      *string      `json:"spec_code" gorm:"size:50;uniqueIndex:idx_spec_code_per_sub,priority:2"`
	Unit          string       `json:"unit" gorm:"size:50"`
	DataType      SpecDataType `json:"data_type" gorm:"size:20;not null;default:text"`
	// Options holds a JSON-encoded list of choices; required and validated when
	// DataType is "select".
	Options      *string     `json:"options" gorm:"type:text"`
	MinValue     *float64    `json:"min_value"`
	MaxValue     *float64    `json:"max_value"`
	IsRequired   bool        `json:"is_required" gorm:"not null;default:false"`
	DisplayOrder int         `json:"display_order" gorm:"not null;default:0"`
	Description  string      `json:"description" gorm:"type:text"`
	Status       AssetStatus `json:"status" gorm:"size:20;not null;default:active"`
	CreatedBy    *uint       `json:"created_by"`
	UpdatedBy    *uint       `json:"updated_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	SubCategory         *AssetSubCategory    `json:"sub_category,omitempty" gorm:"foreignKey:SubCategoryID"`
	Creator             *User                `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Updater             *User                `json:"updater,omitempty" gorm:"foreignKey:UpdatedBy"`
	AssetSpecifications []AssetSpecification `json:"asset_specifications,omitempty" gorm:"foreignKey:SpecCategoryID"`
}

// AssetSpecification is one spec value on one asset, unique per
// (asset, spec category) pair.
type AssetSpecification struct {
	ID             uint     `json:"id" gorm:"primaryKey"`
	AssetID        uint     `json:"asset_id" gorm:"not null;uniqueIndex:idx_asset_spec,priority:1"`
	SpecCategoryID uint     `json:"spec_category_id" gorm:"not null;uniqueIndex:idx_asset_spec,priority:2"`
	Value          string   `json:"value" gorm:"type:text"`
	NumericValue   *float64 `json:"numeric_value"` // populated for number specs, enables range queries
	CreatedBy      *uint    `json:"created_by"`
	UpdatedBy      *uint    `json:"updated_by"`
	VerifiedBy     *uint    `json:"verified_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SpecCategory *SpecificationCategory `json:"spec_category,omitempty" gorm:"foreignKey:SpecCategoryID"`
}
