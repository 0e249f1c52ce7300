package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/initializers"
	"github.com/trottiparts/trottiparts-api/middlewares"
	"github.com/trottiparts/trottiparts-api/models"
	"gorm.io/gorm"
)

// AddGarageEntry registers a scooter in the authenticated user's garage.
func AddGarageEntry(ctx *gin.Context) {
	userId := middlewares.UserIDFromContext(ctx)
	if userId == 0 {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	var entry models.GarageEntry
	if err := ctx.ShouldBindJSON(&entry); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	entry.UserID = userId
	if entry.Kind != "owned" && entry.Kind != "favorite" {
		entry.Kind = "owned"
	}

	var scooter models.ScooterModel
	if err := initializers.DB.First(&scooter, entry.ScooterModelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Scooter model not found")
		} else {
			log.Println("Database error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if err := initializers.DB.Create(&entry).Error; err != nil {
		log.Println("Create error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Scooter already in garage")
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": scooter.Name + " added to garage",
		"id":      entry.ID,
	})
}

func GetGarage(ctx *gin.Context) {
	userId := middlewares.UserIDFromContext(ctx)
	if userId == 0 {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	var entries []models.GarageEntry
	result := initializers.DB.
		Preload("ScooterModel").
		Preload("ScooterModel.Brand").
		Where("user_id = ?", userId).
		Find(&entries)
	if result.Error != nil {
		log.Println("Database error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch garage")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"garage": entries})
}

func DeleteGarageEntry(ctx *gin.Context) {
	userId := middlewares.UserIDFromContext(ctx)
	if userId == 0 {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Authentication required")
		return
	}

	entryId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse garage entry id")
		return
	}

	result := initializers.DB.
		Where("id = ? AND user_id = ?", entryId, userId).
		Delete(&models.GarageEntry{})
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to remove scooter from garage")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Garage entry not found")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Scooter removed from garage"})
}
