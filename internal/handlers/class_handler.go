// safemap/internal/handlers/class_handler.go
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/models"
)

// maxPinAttempts bounds the search for a free 4-digit PIN. The unique
// index on classes.pin is the actual safety net; generation just
// retries on the translated conflict error.
const maxPinAttempts = 20

func generatePin() string {
	return fmt.Sprintf("%04d", 1000+rand.IntN(9000))
}

func CreateClassHandler(c *gin.Context) {
	var input models.ClassInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class name is required"})
		return
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class name is required"})
		return
	}

	for attempt := 0; attempt < maxPinAttempts; attempt++ {
		class := models.Class{Pin: generatePin(), Name: name}
		err := config.DB.Create(&class).Error
		if err == nil {
			slog.Info("class created", "class_id", class.ID, "pin", class.Pin)
			c.JSON(http.StatusCreated, gin.H{"class": class})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create class: " + err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate a unique PIN, please try again"})
}

func ListClassesHandler(c *gin.Context) {
	var classes []models.Class
	if err := config.DB.Order("created_at DESC").Find(&classes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list classes: " + err.Error()})
		return
	}
	if classes == nil {
		classes = make([]models.Class, 0)
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// ExportClassPinsHandler writes all pins of a class as an xlsx
// attachment for the teacher dashboard.
func ExportClassPinsHandler(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid class id"})
		return
	}

	var class models.Class
	if err := config.DB.First(&class, "id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "class not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load class: " + err.Error()})
		return
	}

	var pins []models.PinResponse
	err = config.DB.Table("safety_pins").
		Select("safety_pins.*, students.name AS student_name").
		Joins("LEFT JOIN students ON students.id = safety_pins.student_id").
		Where("safety_pins.class_id = ?", classID).
		Order("safety_pins.created_at DESC").
		Scan(&pins).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pins: " + err.Error()})
		return
	}

	f := excelize.NewFile()
	sheetName := "안전 핀"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"제목", "작성자", "카테고리", "장소", "주소", "설명", "등록일"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, p := range pins {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.Title)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), p.StudentName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), p.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), p.LocationType)
		if p.Address != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), *p.Address)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), p.CreatedAt.Format("2006-01-02 15:04"))
	}

	fileName := fmt.Sprintf("safety_pins_%s_%s.xlsx", class.Pin, time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write Excel file"})
	}
}
