// safemap/models/feedback.go

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherFeedback represents the 'teacher_feedbacks' table. Feedback is
// shared: at most one row per pin, upserted on write.
type TeacherFeedback struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SafetyPinID uuid.UUID `json:"safety_pin_id" gorm:"type:uuid;not null;uniqueIndex"`
	TeacherID   *string   `json:"teacher_id"`
	Feedback    string    `json:"feedback" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *TeacherFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type FeedbackInput struct {
	SafetyPinID string  `json:"safety_pin_id" binding:"required"`
	Feedback    string  `json:"feedback" binding:"required"`
	TeacherID   *string `json:"teacher_id"`
}
