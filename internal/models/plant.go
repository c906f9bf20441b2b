// internal/models/plant.go
package models

import "time"

// Plant is a top-level physical site grouping areas.
type Plant struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Areas []Area `json:"areas,omitempty" gorm:"foreignKey:PlantID"`
}

// Area is a zone within a plant; assets are located in areas.
type Area struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PlantID     uint      `json:"plant_id" gorm:"not null;index"`
	Code        string    `json:"code" gorm:"size:50;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Plant  *Plant  `json:"plant,omitempty" gorm:"foreignKey:PlantID"`
	Assets []Asset `json:"assets,omitempty" gorm:"foreignKey:AreaID"`
}
