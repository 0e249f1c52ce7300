package models

import "gorm.io/gorm"

type ScooterModel struct {
	gorm.Model
	BrandID   int    `json:"brandId"`
	Brand     *Brand `json:"brand,omitempty"`
	Name      string `json:"name" binding:"required"`
	Slug      string `json:"slug" gorm:"uniqueIndex"`
	YearFrom  int    `json:"yearFrom"`
	YearTo    int    `json:"yearTo"`
	ImageUrl  string `json:"imageUrl"`
	MaxSpeed  int    `json:"maxSpeed"`
	Autonomy  int    `json:"autonomy"`
	MotorWatt int    `json:"motorWatt"`
}

// PartCompatibility links a Part to a ScooterModel it fits.
type PartCompatibility struct {
	gorm.Model
	PartID         int           `json:"partId" gorm:"index:idx_part_scooter,unique"`
	ScooterModelID int           `json:"scooterModelId" gorm:"index:idx_part_scooter,unique"`
	ScooterModel   *ScooterModel `json:"scooterModel,omitempty"`
	Notes          string        `json:"notes"`
}

// GarageEntry is a scooter a user owns or follows; it drives the
// "parts for my scooter" compatibility filter.
type GarageEntry struct {
	gorm.Model
	UserID         int           `json:"userId" gorm:"index:idx_user_scooter,unique"`
	ScooterModelID int           `json:"scooterModelId" gorm:"index:idx_user_scooter,unique" binding:"required"`
	ScooterModel   *ScooterModel `json:"scooterModel,omitempty"`
	Kind           string        `json:"kind"` // "owned" or "favorite"
	Nickname       string        `json:"nickname"`
}
