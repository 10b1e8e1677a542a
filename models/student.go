// safemap/models/student.go

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student represents the 'students' table. A row is created when a
// student completes the two-phase join flow. SessionID stores the jti
// of the session token issued at join time; the token itself stays on
// the client.
type Student struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ClassID   uuid.UUID `json:"class_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" gorm:"not null"`
	SessionID string    `json:"session_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
