// safemap/internal/handlers/solution_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/internal/middleware"
	"github.com/waseok/safemap/models"
)

func CreateSolutionHandler(c *gin.Context) {
	studentID, _, ok := middleware.SessionStudent(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session required"})
		return
	}

	var input models.SolutionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "safety_pin_id, type and content are required"})
		return
	}
	safetyPinID, err := uuid.Parse(input.SafetyPinID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid safety_pin_id"})
		return
	}
	if !models.IsValidSolutionType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be text, image or drawing"})
		return
	}
	if strings.TrimSpace(input.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	solution := models.Solution{
		SafetyPinID: safetyPinID,
		StudentID:   studentID,
		Type:        input.Type,
		Content:     input.Content,
	}
	if err := config.DB.Create(&solution).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create solution: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"solution": solution})
}

func ListSolutionsHandler(c *gin.Context) {
	safetyPinIDStr := c.Query("safety_pin_id")
	if safetyPinIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "safety_pin_id is required"})
		return
	}
	safetyPinID, err := uuid.Parse(safetyPinIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid safety_pin_id"})
		return
	}

	var solutions []models.SolutionResponse
	err = config.DB.Table("solutions").
		Select("solutions.*, students.name AS student_name").
		Joins("LEFT JOIN students ON students.id = solutions.student_id").
		Where("solutions.safety_pin_id = ?", safetyPinID).
		Order("solutions.created_at DESC").
		Scan(&solutions).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list solutions: " + err.Error()})
		return
	}
	if solutions == nil {
		solutions = make([]models.SolutionResponse, 0)
	}
	c.JSON(http.StatusOK, gin.H{"solutions": solutions})
}
