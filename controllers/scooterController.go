package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/initializers"
	"github.com/trottiparts/trottiparts-api/models"
	"gorm.io/gorm"
)

func CreateScooterModel(ctx *gin.Context) {
	var scooter models.ScooterModel
	if err := ctx.ShouldBindJSON(&scooter); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&scooter).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create scooter model", err)
		return
	}

	ctx.JSON(http.StatusCreated, scooter)
}

func GetScooterModels(ctx *gin.Context) {
	query := initializers.DB.Preload("Brand")

	if brand := ctx.Query("brand"); brand != "" {
		query = query.Joins("JOIN brands ON brands.id = scooter_models.brand_id").
			Where("brands.slug = ?", brand)
	}

	if search := ctx.Query("search"); search != "" {
		query = query.Where("scooter_models.name LIKE ?", "%"+search+"%")
	}

	var scooters []models.ScooterModel
	if result := query.Order("name asc").Find(&scooters); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch scooter models", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"scooterModels": scooters})
}

func GetScooterModel(ctx *gin.Context) {
	scooterId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid scooter model ID", err)
		return
	}

	var scooter models.ScooterModel
	result := initializers.DB.Preload("Brand").First(&scooter, scooterId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Scooter model not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve scooter model", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, scooter)
}

// GetCompatibleParts lists the parts that fit a given scooter model.
func GetCompatibleParts(ctx *gin.Context) {
	scooterId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid scooter model ID", err)
		return
	}

	var parts []models.Part
	result := initializers.DB.
		Preload("Images").
		Preload("Category").
		Joins("JOIN part_compatibilities ON part_compatibilities.part_id = parts.id").
		Where("part_compatibilities.scooter_model_id = ?", scooterId).
		Find(&parts)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch compatible parts", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"parts": parts})
}

// CreateCompatibility links a part to a scooter model it fits.
func CreateCompatibility(ctx *gin.Context) {
	var compat models.PartCompatibility
	if err := ctx.ShouldBindJSON(&compat); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var part models.Part
	if err := initializers.DB.First(&part, compat.PartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Part not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate part", err)
		}
		return
	}

	var scooter models.ScooterModel
	if err := initializers.DB.First(&scooter, compat.ScooterModelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Scooter model not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate scooter model", err)
		}
		return
	}

	if err := initializers.DB.Create(&compat).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create compatibility", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Compatibility added successfully"})
}

func DeleteCompatibility(ctx *gin.Context) {
	compatId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid compatibility ID", err)
		return
	}

	if result := initializers.DB.Delete(&models.PartCompatibility{}, compatId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete compatibility", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Compatibility removed successfully"})
}
