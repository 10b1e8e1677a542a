// safemap/internal/handlers/pin_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/internal/middleware"
	"github.com/waseok/safemap/models"
)

func CreatePinHandler(c *gin.Context) {
	studentID, classID, ok := middleware.SessionStudent(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}

	var input models.PinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location_type, category and title are required"})
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if !models.IsValidLocationType(input.LocationType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown location type"})
		return
	}
	if !models.IsValidCategory(input.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown safety category"})
		return
	}

	pin := models.SafetyPin{
		ClassID:      classID,
		StudentID:    studentID,
		LocationType: input.LocationType,
		Category:     input.Category,
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		ImageURL:     input.ImageURL,
	}

	// Coordinates are meaningful only for outdoor reports; everything
	// else persists NULL no matter what the client sent.
	if input.LocationType == models.LocationVillage {
		if input.Latitude == nil || input.Longitude == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "outdoor reports need latitude and longitude"})
			return
		}
		pin.Latitude = input.Latitude
		pin.Longitude = input.Longitude
		pin.Address = input.Address
	}

	if err := config.DB.Create(&pin).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create pin: " + err.Error()})
		return
	}

	slog.Info("pin created", "pin_id", pin.ID, "class_id", classID, "category", pin.Category)
	c.JSON(http.StatusCreated, gin.H{"pin": pin})
}

func ListPinsHandler(c *gin.Context) {
	classIDStr := c.Query("class_id")
	if classIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class_id is required"})
		return
	}
	classID, err := uuid.Parse(classIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class_id"})
		return
	}

	query := config.DB.Table("safety_pins").
		Select("safety_pins.*, students.name AS student_name").
		Joins("LEFT JOIN students ON students.id = safety_pins.student_id").
		Where("safety_pins.class_id = ?", classID).
		Order("safety_pins.created_at DESC")

	if studentIDStr := c.Query("student_id"); studentIDStr != "" {
		studentID, err := uuid.Parse(studentIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student_id"})
			return
		}
		query = query.Where("safety_pins.student_id = ?", studentID)
	}
	if locationType := c.Query("location_type"); locationType != "" {
		query = query.Where("safety_pins.location_type = ?", locationType)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("safety_pins.category = ?", category)
	}

	var pins []models.PinResponse
	if err := query.Scan(&pins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pins: " + err.Error()})
		return
	}
	if pins == nil {
		pins = make([]models.PinResponse, 0)
	}
	c.JSON(http.StatusOK, gin.H{"pins": pins})
}

func GetPinHandler(c *gin.Context) {
	pinID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pin id"})
		return
	}

	var pin models.PinResponse
	result := config.DB.Table("safety_pins").
		Select("safety_pins.*, students.name AS student_name").
		Joins("LEFT JOIN students ON students.id = safety_pins.student_id").
		Where("safety_pins.id = ?", pinID).
		Limit(1).
		Scan(&pin)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pin: " + result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "pin not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pin": pin})
}
