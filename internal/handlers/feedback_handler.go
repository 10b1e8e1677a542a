// safemap/internal/handlers/feedback_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/waseok/safemap/config"
	"github.com/waseok/safemap/models"
)

// GetFeedbackHandler returns every feedback row for a pin newest first,
// plus the latest one as a convenience field (nil when there is none).
func GetFeedbackHandler(c *gin.Context) {
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

	var feedbacks []models.TeacherFeedback
	err = config.DB.
		Where("safety_pin_id = ?", safetyPinID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch feedback: " + err.Error()})
		return
	}

	var latest *models.TeacherFeedback
	if len(feedbacks) > 0 {
		latest = &feedbacks[0]
	}
	if feedbacks == nil {
		feedbacks = make([]models.TeacherFeedback, 0)
	}
	c.JSON(http.StatusOK, gin.H{"feedback": latest, "feedbacks": feedbacks})
}

// UpsertFeedbackHandler keeps a single feedback row per pin: update the
// text when one exists, insert otherwise.
func UpsertFeedbackHandler(c *gin.Context) {
	var input models.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "safety_pin_id and feedback are required"})
		return
	}
	safetyPinID, err := uuid.Parse(input.SafetyPinID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid safety_pin_id"})
		return
	}
	text := strings.TrimSpace(input.Feedback)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "feedback text is required"})
		return
	}

	var existing models.TeacherFeedback
	err = config.DB.Where("safety_pin_id = ?", safetyPinID).First(&existing).Error
	switch {
	case err == nil:
		existing.Feedback = text
		if input.TeacherID != nil {
			existing.TeacherID = input.TeacherID
		}
		if err := config.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update feedback: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"feedback": existing})
	case errors.Is(err, gorm.ErrRecordNotFound):
		feedback := models.TeacherFeedback{
			SafetyPinID: safetyPinID,
			TeacherID:   input.TeacherID,
			Feedback:    text,
		}
		if err := config.DB.Create(&feedback).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save feedback: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"feedback": feedback})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up feedback: " + err.Error()})
	}
}
