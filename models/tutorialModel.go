package models

import "gorm.io/gorm"

type Tutorial struct {
	gorm.Model
	Title          string        `json:"title" binding:"required"`
	Slug           string        `json:"slug" gorm:"uniqueIndex"`
	Summary        string        `json:"summary"`
	Body           string        `json:"body" gorm:"type:text"`
	CoverImageUrl  string        `json:"coverImageUrl"`
	Difficulty     string        `json:"difficulty"` // "facile", "moyen", "difficile"
	DurationMin    int           `json:"durationMin"`
	PartID         *int          `json:"partId"`
	Part           *Part         `json:"part,omitempty"`
	ScooterModelID *int          `json:"scooterModelId"`
	ScooterModel   *ScooterModel `json:"scooterModel,omitempty"`
	Published      bool          `json:"published"`
}
