package models

import "gorm.io/gorm"

type CartItem struct {
	gorm.Model
	CartID       int     `json:"cartId"`
	PartID       int     `json:"partId" binding:"required"`
	PartName     string  `json:"partName"`
	PartPrice    float64 `json:"partPrice"`
	Quantity     int     `json:"quantity" binding:"required"`
	PartImageUrl string  `json:"partImageUrl"`
}

type Cart struct {
	gorm.Model
	UserID int        `json:"userId"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}
