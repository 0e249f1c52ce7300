package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/trottiparts/trottiparts-api/initializers"
	"github.com/trottiparts/trottiparts-api/models"
	"gorm.io/gorm"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// Part handlers
func CreatePart(ctx *gin.Context) {
	var part models.Part
	if err := ctx.ShouldBindJSON(&part); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&part).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create part", err)
		return
	}

	ctx.JSON(http.StatusCreated, part)
}

func UpdatePart(ctx *gin.Context) {
	partId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid part ID", err)
		return
	}

	var part models.Part
	if err := initializers.DB.First(&part, partId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Part not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to fetch part", err)
		}
		return
	}

	var update models.Part
	if err := ctx.ShouldBindJSON(&update); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	update.ID = part.ID
	if err := initializers.DB.Model(&part).Updates(map[string]any{
		"name":        update.Name,
		"slug":        update.Slug,
		"description": update.Description,
		"price":       update.Price,
		"stock":       update.Stock,
		"reference":   update.Reference,
		"specs":       update.Specs,
		"category_id": update.CategoryID,
		"brand_id":    update.BrandID,
	}).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update part", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Part updated successfully"})
}

func DeletePart(ctx *gin.Context) {
	partId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid part ID", err)
		return
	}

	if result := initializers.DB.Delete(&models.Part{}, partId); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete part", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Part deleted successfully"})
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

func UploadPartImages(ctx *gin.Context) {
	// Get multipart form
	form, err := ctx.MultipartForm()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
		return
	}

	// Get and validate partId
	partIdStr := ctx.PostForm("partId")
	if partIdStr == "" {
		respondWithError(ctx, http.StatusBadRequest, "Missing partId", nil)
		return
	}

	partId, err := strconv.Atoi(partIdStr)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid partId", err)
		return
	}

	// Validate part exists
	var part models.Part
	if err := initializers.DB.First(&part, partId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Part not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate part", err)
		}
		return
	}

	// Get AWS uploader
	uploader, err := getAWSUploader()
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
		return
	}

	var uploadedUrls []string
	var failedUploads []string

	// Upload files and save to database
	for _, file := range files {
		f, openErr := file.Open()
		if openErr != nil {
			log.Printf("Error opening file %s: %v", file.Filename, openErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		// Generate a unique filename to prevent overwrites
		uniqueFilename := fmt.Sprintf("%d-%s-%s", partId, time.Now().Format("20060102150405"), file.Filename)

		result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String("trottiparts"),
			Key:         aws.String(uniqueFilename),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		f.Close() // Close file immediately after use

		if uploadErr != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		uploadedUrls = append(uploadedUrls, result.Location)

		// Create a PartImage record
		partImage := models.PartImage{
			Url:    result.Location,
			PartID: partId,
		}

		if err := initializers.DB.Create(&partImage).Error; err != nil {
			log.Printf("Error saving image to database: %v", err)
			// We've already uploaded the file, so we'll just log this error
		}
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}

	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}

	ctx.JSON(http.StatusOK, response)
}

func GetParts(ctx *gin.Context) {
	var parts []models.Part

	// Add pagination
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	offset := (page - 1) * limit

	query := initializers.DB.Preload("Images").Preload("Category").Preload("Brand")

	// Add search by name if provided
	if search := ctx.Query("search"); search != "" {
		query = query.Where("parts.name LIKE ?", "%"+search+"%")
	}

	if category := ctx.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = parts.category_id").
			Where("categories.slug = ?", category)
	}

	if brand := ctx.Query("brand"); brand != "" {
		query = query.Joins("JOIN brands ON brands.id = parts.brand_id").
			Where("brands.slug = ?", brand)
	}

	// Filter by compatible scooter model ("parts for my scooter")
	if scooterId := ctx.Query("scooterModelId"); scooterId != "" {
		query = query.Joins("JOIN part_compatibilities ON part_compatibilities.part_id = parts.id").
			Where("part_compatibilities.scooter_model_id = ?", scooterId)
	}

	// Execute the query with pagination
	result := query.Limit(limit).Offset(offset).Find(&parts)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch parts", result.Error)
		return
	}

	// Get total count for pagination
	var count int64
	initializers.DB.Model(&models.Part{}).Count(&count)

	ctx.JSON(http.StatusOK, gin.H{
		"parts": parts,
		"metadata": gin.H{
			"total": count,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetPart(ctx *gin.Context) {
	partId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid part ID", err)
		return
	}

	var part models.Part
	result := initializers.DB.
		Preload("Images").
		Preload("Category").
		Preload("Brand").
		Preload("Compatibilities.ScooterModel").
		First(&part, partId)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondWithError(ctx, http.StatusNotFound, "Part not found", nil)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve part", result.Error)
		}
		return
	}

	ctx.JSON(http.StatusOK, part)
}

func CreateCategory(ctx *gin.Context) {
	var category models.Category
	if err := ctx.ShouldBindJSON(&category); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&category).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

func GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if result := initializers.DB.Order("name asc").Find(&categories); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

func CreateBrand(ctx *gin.Context) {
	var brand models.Brand
	if err := ctx.ShouldBindJSON(&brand); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := initializers.DB.Create(&brand).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to create brand", err)
		return
	}

	ctx.JSON(http.StatusCreated, brand)
}

func GetBrands(ctx *gin.Context) {
	var brands []models.Brand
	if result := initializers.DB.Order("name asc").Find(&brands); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch brands", result.Error)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"brands": brands})
}
