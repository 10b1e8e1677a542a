// safemap/models/solution.go

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SolutionText    = "text"
	SolutionImage   = "image"
	SolutionDrawing = "drawing"
)

func IsValidSolutionType(s string) bool {
	return s == SolutionText || s == SolutionImage || s == SolutionDrawing
}

// Solution represents the 'solutions' table: a student's proposed
// remedy for a pin. Append-only. For image and drawing types the
// content is a URL produced by the upload endpoint.
type Solution struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SafetyPinID uuid.UUID `json:"safety_pin_id" gorm:"type:uuid;not null;index"`
	StudentID   uuid.UUID `json:"student_id" gorm:"type:uuid;not null"`
	Type        string    `json:"type" gorm:"size:10;not null"`
	Content     string    `json:"content" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Solution) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SolutionInput struct {
	SafetyPinID string `json:"safety_pin_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

// SolutionResponse is a Solution row joined with the student's name.
type SolutionResponse struct {
	ID          uuid.UUID `json:"id"`
	SafetyPinID uuid.UUID `json:"safety_pin_id"`
	StudentID   uuid.UUID `json:"student_id"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	StudentName string    `json:"student_name"`
}
