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

func CreateTutorial(ctx *gin.Context) {
	var tutorial models.Tutorial
	if err := ctx.ShouldBindJSON(&tutorial); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&tutorial).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create tutorial", err)
		return
	}

	ctx.JSON(http.StatusCreated, tutorial)
}

func UpdateTutorial(ctx *gin.Context) {
	tutorialId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid tutorial ID", err)
		return
	}

	var tutorial models.Tutorial
	if err := initializers.DB.First(&tutorial, tutorialId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Tutorial not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch tutorial", err)
		}
		return
	}

	var update models.Tutorial
	if err := ctx.ShouldBindJSON(&update); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Model(&tutorial).Updates(map[string]any{
		"title":            update.Title,
		"slug":             update.Slug,
		"summary":          update.Summary,
		"body":             update.Body,
		"cover_image_url":  update.CoverImageUrl,
		"difficulty":       update.Difficulty,
		"duration_min":     update.DurationMin,
		"part_id":          update.PartID,
		"scooter_model_id": update.ScooterModelID,
		"published":        update.Published,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update tutorial", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tutorial updated successfully"})
}

func DeleteTutorial(ctx *gin.Context) {
	tutorialId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid tutorial ID", err)
		return
	}

	if result := initializers.DB.Delete(&models.Tutorial{}, tutorialId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete tutorial", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Tutorial deleted successfully"})
}

// GetTutorials lists published tutorials, optionally filtered by part or
// scooter model.
func GetTutorials(ctx *gin.Context) {
	query := initializers.DB.Where("published = ?", true)

	if partId := ctx.Query("partId"); partId != "" {
		query = query.Where("part_id = ?", partId)
	}
	if scooterId := ctx.Query("scooterModelId"); scooterId != "" {
		query = query.Where("scooter_model_id = ?", scooterId)
	}

	var tutorials []models.Tutorial
	if result := query.Order("created_at desc").Find(&tutorials); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch tutorials", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"tutorials": tutorials})
}

func GetTutorialBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var tutorial models.Tutorial
	result := initializers.DB.
		Preload("Part").
		Preload("ScooterModel").
		Where("slug = ? AND published = ?", slug, true).
		First(&tutorial)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Tutorial not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve tutorial", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, tutorial)
}
