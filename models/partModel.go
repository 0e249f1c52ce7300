package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug" gorm:"uniqueIndex"`
}

type Brand struct {
	gorm.Model
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug" gorm:"uniqueIndex"`
	LogoUrl string `json:"logoUrl"`
}

type PartImage struct {
	gorm.Model
	Url    string `json:"url" binding:"required"`
	PartID int    `json:"partId" binding:"required"`
}

// Part is a catalog item. Price is tax-exclusive (HT); Stock nil means
// unlimited. Price and Stock are authoritative here and never trusted
// from client input during checkout.
type Part struct {
	gorm.Model
	Name            string              `json:"name" binding:"required"`
	Slug            string              `json:"slug" gorm:"uniqueIndex"`
	Description     string              `json:"description"`
	Price           float64             `json:"price" binding:"required"`
	Stock           *int                `json:"stock"`
	Reference       string              `json:"reference"`
	Specs           datatypes.JSON      `json:"specs"`
	CategoryID      int                 `json:"categoryId"`
	Category        *Category           `json:"category,omitempty"`
	BrandID         int                 `json:"brandId"`
	Brand           *Brand              `json:"brand,omitempty"`
	Images          []PartImage         `json:"images" gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
	Compatibilities []PartCompatibility `json:"compatibilities" gorm:"foreignKey:PartID;constraint:OnDelete:CASCADE"`
}

// MainImageUrl returns the first image URL, or "" when the part has none.
func (p Part) MainImageUrl() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Url
}
