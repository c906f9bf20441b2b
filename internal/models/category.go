// internal/models/category.go
package models

import "time"

// AssetCategory is the top level of the asset classification tree.
type AssetCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	SubCategories []AssetSubCategory `json:"sub_categories,omitempty" gorm:"foreignKey:CategoryID"`
}

// AssetSubCategory sits under a category. Its code is generated, never
// client-supplied: parent category code plus a 4-digit sequence.
type AssetSubCategory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	Code        string    `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category                *AssetCategory          `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Assets                  []Asset                 `json:"assets,omitempty" gorm:"foreignKey:SubCategoryID"`
	SpecificationCategories []SpecificationCategory `json:"specification_categories,omitempty" gorm:"foreignKey:SubCategoryID"`
}

// ConsumableCategory classifies consumables and spare components.
type ConsumableCategory struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Type        ConsumableType `json:"type" gorm:"size:20;not null;default:consumable"`
	Code        string         `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description string         `json:"description" gorm:"type:text"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedBy   *uint          `json:"created_by"`
	UpdatedBy   *uint          `json:"updated_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Creator *User `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Updater *User `json:"updater,omitempty" gorm:"foreignKey:UpdatedBy"`
}
